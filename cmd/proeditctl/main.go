package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jorg-4/proedit-core/internal/config"
	"github.com/jorg-4/proedit-core/internal/export"
	"github.com/jorg-4/proedit-core/internal/logging"
	"github.com/jorg-4/proedit-core/internal/project"
	"github.com/jorg-4/proedit-core/internal/store"
	"github.com/jorg-4/proedit-core/internal/timebase"
)

var (
	flagOutput string
	flagTitle  string
)

var rootCmd = &cobra.Command{
	Use:           "proeditctl",
	Short:         "Inspect, migrate and archive timeline project documents",
	Version:       config.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <project.json>",
	Short: "Print a summary of a project document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := loadFile(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Project:  %s (document version %d)\n", f.Project.Name, f.Version)
		for i, seq := range f.Project.Sequences {
			marker := " "
			if i == f.Project.Active {
				marker = "*"
			}
			fmt.Printf("%s Sequence %q  %dx%d @ %s\n", marker, seq.Name, seq.Width, seq.Height, seq.Rate)
			fmt.Printf("  duration %s (%d frames)\n",
				timebase.Timecode(seq.Duration(), seq.Rate), seq.Duration().Frames(seq.Rate))
			for _, tr := range seq.VideoTracks {
				fmt.Printf("  %-4s %2d items  %s\n", tr.Name, len(tr.Items), timebase.Timecode(tr.Duration(), seq.Rate))
			}
			for _, tr := range seq.AudioTracks {
				fmt.Printf("  %-4s %2d items  %s\n", tr.Name, len(tr.Items), timebase.Timecode(tr.Duration(), seq.Rate))
			}
		}
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate <project.json>",
	Short: "Rewrite a project document at the current version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := loadFile(args[0])
		if err != nil {
			return err
		}
		f.AppVersion = config.Version

		data, err := project.Save(f)
		if err != nil {
			return fmt.Errorf("failed to serialize document: %w", err)
		}

		out := flagOutput
		if out == "" {
			out = args[0]
		}
		if err := os.WriteFile(out, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		fmt.Printf("wrote %s at version %d\n", out, f.Version)
		return nil
	},
}

var edlCmd = &cobra.Command{
	Use:   "edl <project.json>",
	Short: "Render the active sequence as a CMX3600 EDL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := loadFile(args[0])
		if err != nil {
			return err
		}
		seq := f.Project.ActiveSequence()
		if seq == nil {
			return fmt.Errorf("project %q has no active sequence", f.Project.Name)
		}

		title := flagTitle
		if title == "" {
			title = seq.Name
		}
		fmt.Print(export.GenerateEDL(seq, title))
		return nil
	},
}

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the local project library",
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects in the library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, closeDB, err := openLibrary()
		if err != nil {
			return err
		}
		defer closeDB()

		recs, err := repo.ListProjects(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list projects: %w", err)
		}
		if len(recs) == 0 {
			fmt.Println("library is empty")
			return nil
		}
		for _, rec := range recs {
			fmt.Printf("%-36s  v%-2d  %-20s  updated %s\n",
				rec.ID, rec.Version, rec.Name, rec.UpdatedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

var librarySaveCmd = &cobra.Command{
	Use:   "save <project.json>",
	Short: "Store a project document in the library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		f, err := loadFile(args[0])
		if err != nil {
			return err
		}
		data, err := project.Save(f)
		if err != nil {
			return fmt.Errorf("failed to serialize document: %w", err)
		}

		repo, closeDB, err := openLibrary()
		if err != nil {
			return err
		}
		defer closeDB()

		ctx := context.Background()
		rec := &store.ProjectRecord{
			ID:         projectID(f),
			Name:       f.Project.Name,
			Version:    f.Version,
			AppVersion: f.AppVersion,
			Data:       data,
		}
		if err := repo.SaveProject(ctx, rec); err != nil {
			return fmt.Errorf("failed to save project: %w", err)
		}
		if err := repo.SaveSnapshot(ctx, rec.ID, data); err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}
		if err := repo.PruneSnapshots(ctx, rec.ID, cfg.AutosaveKeep()); err != nil {
			return fmt.Errorf("failed to prune snapshots: %w", err)
		}
		fmt.Printf("saved %q as %s\n", rec.Name, rec.ID)
		return nil
	},
}

var libraryLoadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Write a library project back out as a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, closeDB, err := openLibrary()
		if err != nil {
			return err
		}
		defer closeDB()

		rec, err := repo.GetProjectByName(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to look up project: %w", err)
		}
		if rec == nil {
			return fmt.Errorf("no project named %q in the library", args[0])
		}

		if flagOutput == "" {
			fmt.Print(string(rec.Data))
			return nil
		}
		if err := os.WriteFile(flagOutput, rec.Data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", flagOutput, err)
		}
		fmt.Printf("wrote %s\n", flagOutput)
		return nil
	},
}

func loadFile(path string) (*project.ProjectFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	f, err := project.Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return f, nil
}

// projectID keys library rows by the active sequence identity, so
// repeated saves of the same document update one row.
func projectID(f *project.ProjectFile) string {
	if seq := f.Project.ActiveSequence(); seq != nil {
		return seq.ID.String()
	}
	return f.Project.Name
}

func openLibrary() (store.Repository, func(), error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.NewLogger(cfg.LogLevel())
	db, err := store.Open(cfg.DBPath(), logging.WithComponent(logger, "store"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open library: %w", err)
	}
	return store.NewRepository(db.Conn()), func() { db.Close() }, nil
}

func init() {
	migrateCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output path (default: rewrite in place)")
	edlCmd.Flags().StringVar(&flagTitle, "title", "", "EDL title (default: sequence name)")
	libraryLoadCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output path (default: stdout)")

	libraryCmd.AddCommand(libraryListCmd, librarySaveCmd, libraryLoadCmd)
	rootCmd.AddCommand(inspectCmd, migrateCmd, edlCmd, libraryCmd)
}

func main() {
	// A .env file is optional; the system environment always wins.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
