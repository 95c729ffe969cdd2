package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tagfiler/tagfiler/pkg/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default configuration file",
	Long: `Create a default tagfiler configuration file.

The file is written to $XDG_CONFIG_HOME/tagfiler/config.yaml by default,
or to the path given with --config. Existing files are left untouched
unless --force is passed.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing configuration file")
}

func runInit(cmd *cobra.Command, args []string) error {
	var path string
	if custom := GetConfigFile(); custom != "" {
		if err := config.InitConfigToPath(custom, initForce); err != nil {
			return err
		}
		path = custom
	} else {
		written, err := config.InitConfig(initForce)
		if err != nil {
			return err
		}
		path = written
	}

	fmt.Printf("Configuration file created: %s\n", path)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Review and edit the configuration file")
	fmt.Println("  2. Run migrations:   tagfiler migrate")
	fmt.Println("  3. Start the server: tagfiler start")
	return nil
}
