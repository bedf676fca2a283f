package internal

import (
	"errors"
	"fmt"

	"github.com/genspectrum/sourcewatch/internal/config"
	"github.com/genspectrum/sourcewatch/internal/errs"
	"github.com/genspectrum/sourcewatch/internal/logger"
	"github.com/genspectrum/sourcewatch/internal/middleware"
	"github.com/genspectrum/sourcewatch/internal/models"
	"github.com/genspectrum/sourcewatch/internal/prompter"
	"github.com/genspectrum/sourcewatch/internal/store"
	"github.com/genspectrum/sourcewatch/internal/utils"

	"github.com/spf13/cobra"
)

func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the state file",
		Long: `Create the state file that "check" compares against.

A run never creates the state file on its own: a missing file is an error.
Seed it with known values, or with the current remote values using
--from-remote (the next check then reports no change until the source moves).

A --data-version that is valid JSON is stored as-is (42, "v2", null);
anything else is stored as a string.`,
		Example: `sourcewatch init --content-length 73400320 --last-modified "Mon, 02 Jan 2023 15:04:05 GMT" --data-version 1672671845
sourcewatch init --from-remote --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := middleware.Get[*config.Config](cmd, middleware.CtxKeyConfig)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			fromRemote, _ := flags.GetBool("from-remote")
			force, _ := flags.GetBool("force")
			contentLength, _ := flags.GetString("content-length")
			lastModified, _ := flags.GetString("last-modified")
			dataVersion, _ := flags.GetString("data-version")

			anyValue := flags.Changed("content-length") || flags.Changed("last-modified") || flags.Changed("data-version")

			var st models.State
			switch {
			case fromRemote && anyValue:
				return middleware.FlagComboError(errs.InitRemoteWithValues)
			case fromRemote:
				if st, err = fetchRemoteState(cmd, cfg); err != nil {
					return err
				}
			case contentLength == "" || lastModified == "":
				return middleware.FlagComboError(errs.InitMissingFields)
			default:
				st = models.State{
					ContentLength: contentLength,
					LastModified:  lastModified,
				}
				if flags.Changed("data-version") {
					st.LapisDataVersion = models.ParseDataVersion(dataVersion)
				}
			}

			fs := store.NewFS(cfg.StatePath)
			if !force && prompter.StdinIsTerminal() {
				if force, err = confirmOverwrite(cmd, fs.Path()); err != nil {
					return err
				}
			}
			if err := store.Bootstrap(cmd.Context(), fs, st, force); err != nil {
				if errors.Is(err, store.ErrStateExists) {
					return middleware.FlagComboError(errs.InitStateExists, fs.Path())
				}
				return err
			}

			logger.Success("State written to %s", fs.Path())
			logger.Debug("content_length=%s last_modified=%s lapis_data_version=%s",
				st.ContentLength, st.LastModified, st.LapisDataVersion)
			return nil
		},
	}

	f := cmd.Flags()
	f.String("content-length", "", "Content-Length of the current export")
	f.String("last-modified", "", "Last-Modified of the current export")
	f.String("data-version", "", "LAPIS dataVersion of the last import (default null)")
	f.Bool("from-remote", false, "Seed from the current remote values")
	f.BoolP("force", "f", false, "Overwrite an existing state file")
	return cmd
}

// confirmOverwrite asks before replacing an existing state file. A missing
// file needs no confirmation.
func confirmOverwrite(cmd *cobra.Command, path string) (bool, error) {
	exists, err := utils.FileExists(path)
	if err != nil || !exists {
		return false, err
	}
	logger.Warn("Overwriting the state can re-trigger an import that already ran.")
	return prompter.New(cmd.InOrStdin(), cmd.OutOrStdout()).Confirm(fmt.Sprintf("Overwrite %s?", path))
}
