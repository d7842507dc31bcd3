// Package config loads and validates the relconf root configuration.
//
// The root configuration is a YAML document listing tools:
//
//	tools:
//	  - name: git
//	    format: toml
//	    inject:
//	      - path: ~/.config/git/generated.toml
//	        env-name: GIT_CONFIG_GLOBAL
//	    configs:
//	      - path: ~/dotfiles/git/base.toml
//	        when:
//	          - directory: ~/work
//	            match-subdirectories: true
//	      - command: ./print-extra-config
//
// Loading goes through koanf and mapstructure into loosely typed raw structs
// which are then validated into types.Tool values. Validation checks the
// filesystem: fragment paths must be files and condition directories must
// be directories at load time.
package config
