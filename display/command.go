package display

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gwu-libraries/wasync/errors"
)

// OutputEnv forces JSON output when set to "json", for scripted runs
const OutputEnv = "WASYNC_OUTPUT"

// ShouldOutputJSON reports whether a command should print JSON instead of tables
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd != nil && cmd.Flags().Lookup("json") != nil && cmd.Flags().Changed("json") {
		jsonFlag, _ := cmd.Flags().GetBool("json")
		return jsonFlag
	}
	return os.Getenv(OutputEnv) == "json"
}

// OutputJSON marshals and prints JSON to stdout
func OutputJSON(v interface{}) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return errors.Wrap(err, "failed to marshal JSON")
	}
	fmt.Println(string(data))
	return nil
}
