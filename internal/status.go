package internal

import (
	"encoding/json"

	"github.com/genspectrum/sourcewatch/internal/config"
	"github.com/genspectrum/sourcewatch/internal/logger"
	"github.com/genspectrum/sourcewatch/internal/middleware"
	"github.com/genspectrum/sourcewatch/internal/models"
	"github.com/genspectrum/sourcewatch/internal/store"
	"github.com/genspectrum/sourcewatch/internal/utils/pathutils"

	"github.com/spf13/cobra"
)

type statusView struct {
	Path   string        `json:"path"`
	Stored models.State  `json:"stored"`
	Remote *models.State `json:"remote,omitempty"`
}

func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the stored state, optionally next to the current remote values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := middleware.Get[*config.Config](cmd, middleware.CtxKeyConfig)
			if err != nil {
				return err
			}

			withRemote, err := cmd.Flags().GetBool("remote")
			if err != nil {
				return err
			}

			fs := store.NewFS(cfg.StatePath)
			st, err := fs.Load(cmd.Context())
			if err != nil {
				return err
			}

			view := statusView{Path: fs.Path(), Stored: st}
			if withRemote {
				current, err := fetchRemoteState(cmd, cfg)
				if err != nil {
					return err
				}
				view.Remote = &current
			}

			if logger.FlagJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetEscapeHTML(false)
				return enc.Encode(view)
			}
			return renderStatus(view)
		},
	}

	cmd.Flags().BoolP("remote", "r", false, "Also query the data source and LAPIS")
	return cmd
}

func fetchRemoteState(cmd *cobra.Command, cfg *config.Config) (models.State, error) {
	r := newRemote(cfg)

	fp, err := r.metadata.FetchMetadata(cmd.Context())
	if err != nil {
		return models.State{}, err
	}
	v, err := r.versions.FetchDataVersion(cmd.Context())
	if err != nil {
		return models.State{}, err
	}

	return models.State{
		ContentLength:    fp.ContentLength,
		LastModified:     fp.LastModified,
		LapisDataVersion: v,
	}, nil
}

type statusRow struct {
	field  string
	stored string
	remote string
	match  bool
}

func statusRows(view statusView) []statusRow {
	rows := []statusRow{
		{field: "content_length", stored: view.Stored.ContentLength},
		{field: "last_modified", stored: view.Stored.LastModified},
		{field: "lapis_data_version", stored: view.Stored.LapisDataVersion.String()},
	}
	if r := view.Remote; r != nil {
		rows[0].remote, rows[0].match = r.ContentLength, r.ContentLength == view.Stored.ContentLength
		rows[1].remote, rows[1].match = r.LastModified, r.LastModified == view.Stored.LastModified
		rows[2].remote, rows[2].match = r.LapisDataVersion.String(), r.LapisDataVersion == view.Stored.LapisDataVersion
	}
	return rows
}

func renderStatus(view statusView) error {
	display, err := pathutils.ToHomePathFormat(view.Path)
	if err != nil {
		display = view.Path
	}
	logger.Info("State file: %s", display)

	headers := []string{"Field", "Stored"}
	if view.Remote != nil {
		headers = append(headers, "Remote", "Match")
	}
	table := logger.CreateTable(headers)

	for _, r := range statusRows(view) {
		row := []string{r.field, r.stored}
		if view.Remote != nil {
			match := "no"
			if r.match {
				match = "yes"
			}
			row = append(row, r.remote, match)
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}

	return table.Render()
}
