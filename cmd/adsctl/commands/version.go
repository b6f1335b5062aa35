package commands

import (
	"fmt"
	"runtime"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// VersionInfo describes the adsctl build.
type VersionInfo struct {
	Version   string `json:"version"    yaml:"version"`
	Commit    string `json:"commit"     yaml:"commit"`
	Built     string `json:"built"      yaml:"built"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display detailed version information about adsctl",
		RunE: func(cmd *cobra.Command, args []string) error {
			versionInfo := VersionInfo{
				Version:   version,
				Commit:    commit,
				Built:     date,
				GoVersion: runtime.Version(),
			}

			rendered, err := renderStructured(cmd.OutOrStdout(), versionInfo)
			if rendered {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Property", "Value")
			_ = table.Append("Version", version)
			_ = table.Append("Commit", commit)
			_ = table.Append("Built", date)
			_ = table.Append("Go", versionInfo.GoVersion)

			err = table.Render()
			if err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}
