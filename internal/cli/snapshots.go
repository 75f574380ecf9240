package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depscope/pkg/snapshot"
)

// snapshotsCommand creates the snapshots command group.
func (c *CLI) snapshotsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "Manage saved query reports",
	}

	cmd.AddCommand(c.snapshotsListCommand())
	cmd.AddCommand(c.snapshotsShowCommand())
	cmd.AddCommand(c.snapshotsDeleteCommand())

	return cmd
}

func openSnapshotStore() (*snapshot.FileStore, error) {
	store, err := snapshot.NewFileStore("")
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}
	return store, nil
}

func (c *CLI) snapshotsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openSnapshotStore()
			if err != nil {
				return err
			}
			defer store.Close()

			snaps, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(snaps) == 0 {
				printInfo("No snapshots saved")
				return nil
			}

			t := newTable("ID", "Name", "Query", "Created")
			for _, s := range snaps {
				t.Row(shortID(s.ID), s.Name, s.Query, s.CreatedAt.Format("2006-01-02 15:04"))
			}
			fmt.Println(t.Render())
			return nil
		},
	}
}

func (c *CLI) snapshotsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openSnapshotStore()
			if err != nil {
				return err
			}
			defer store.Close()

			snap, err := findSnapshot(cmd, store, args[0])
			if err != nil {
				return err
			}
			fmt.Println(snap.Body)
			return nil
		},
	}
}

func (c *CLI) snapshotsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openSnapshotStore()
			if err != nil {
				return err
			}
			defer store.Close()

			snap, err := findSnapshot(cmd, store, args[0])
			if err != nil {
				return err
			}
			if err := store.Delete(cmd.Context(), snap.ID); err != nil {
				return err
			}
			printSuccess("Deleted %s", snap.Name)
			return nil
		},
	}
}

// findSnapshot resolves a full or shortened snapshot ID.
func findSnapshot(cmd *cobra.Command, store *snapshot.FileStore, id string) (*snapshot.Snapshot, error) {
	snaps, err := store.List(cmd.Context())
	if err != nil {
		return nil, err
	}
	for _, s := range snaps {
		if s.ID == id || shortID(s.ID) == id {
			return s, nil
		}
	}
	return nil, fmt.Errorf("no snapshot with ID %q", id)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
