package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// rulesCmd represents the rules command
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the active trait rule table as YAML",
	Long: `Print the trait rule table the analyzer would use, as YAML.

With --rules the given file is validated and printed; otherwise the
built-in table is shown. The output is a valid starting point for a
custom rule file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ruleset, err := loadRuleset()
		if err != nil {
			return err
		}

		yamlData, err := yaml.Marshal(ruleset.Raw())
		if err != nil {
			return fmt.Errorf("error marshaling rules: %w", err)
		}

		fmt.Print(string(yamlData))
		return nil
	},
}

func init() {
	rulesCmd.Flags().StringVar(&rulesFile, "rules", "", "YAML rule file to validate and print")
	rootCmd.AddCommand(rulesCmd)
}
