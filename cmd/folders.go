package cmd

import (
	"fmt"

	"media-manager/feature/media"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var foldersJSON bool

// foldersCmd prints the folder tree derived from storage.
var foldersCmd = &cobra.Command{
	Use:   "folders",
	Short: "List the folder tree of the media bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(false)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		svc := media.NewService(rt.client, rt.cfg.Storage, rt.db, rt.cfg.Media, rt.logger)
		folders, err := svc.Folders(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list folders: %w", err)
		}

		if foldersJSON {
			return printJSON(map[string]any{"folders": folders})
		}

		for _, f := range folders {
			fmt.Println(f)
		}
		rt.logger.Debug("Folders listed", zap.Int("count", len(folders)))
		return nil
	},
}

func init() {
	foldersCmd.Flags().BoolVar(&foldersJSON, "json", false, "Print folders as JSON")
	RootCmd.AddCommand(foldersCmd)
}
