package config

// DefaultConfigTemplate is written by `uamc config init`.
const DefaultConfigTemplate = `# uamc configuration
#
# Precedence: command-line flag > UAMC_* environment variable > this file > default.

# Compile targets used when neither --target nor the document's targets are set.
# targets:
#   - agents-md
#   - cursor-rules

scan:
  # Stop considering files after this many.
  maxFiles: 5000
  # Directory names skipped at any depth.
  ignoreDirs:
    - .git
    - .hg
    - .svn
    - node_modules
    - vendor
    - target
    - build
    - .next
    - .cache
  # Regular expressions; when set, only matching paths are kept.
  # includeOnly:
  #   - '\.md$'

simulate:
  # Warn when a tree has more files than this.
  largeTreeThreshold: 200

log:
  timestamps: true
`
