package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"dochub/internal/bootstrap"
	orgdto "dochub/internal/modules/org/dto"
	"dochub/internal/platform/config"
	"dochub/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "dochub",
		Short:         "Terminal client for the document hub backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.dochub/config.yaml)")

	root.AddCommand(newTUICmd(&configPath))
	root.AddCommand(newUploadCmd(&configPath))
	root.AddCommand(newFilesCmd(&configPath))
	root.AddCommand(newCategoriesCmd(&configPath))
	root.AddCommand(newUsersCmd(&configPath))
	root.AddCommand(newChatCmd(&configPath))
	root.AddCommand(newConnectorCmd(&configPath))
	root.AddCommand(newWatchCmd(&configPath))
	return root
}

func loadApp(configPath string, debug bool) (*bootstrap.App, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(debug)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, logger)
}

func newTUICmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the dochub terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*configPath, false)
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(app)
		},
	}
}

func newUploadCmd(configPath *string) *cobra.Command {
	upload := &cobra.Command{Use: "upload", Short: "Upload documents for ingestion"}

	var categoryID string
	var tags []string

	local := &cobra.Command{
		Use:   "local <path>...",
		Short: "Upload local files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(categoryID) == "" {
				return fmt.Errorf("--category is required")
			}
			app, err := loadApp(*configPath, false)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := bootstrap.RunUpload(cmd.Context(), app, args, categoryID, tags)
			if err != nil {
				return err
			}
			printUploadResult(cmd, out.Uploaded, out.Rejected, out.Warnings)
			return nil
		},
	}
	local.Flags().StringVar(&categoryID, "category", "", "category id")
	local.Flags().StringSliceVar(&tags, "tags", nil, "tags")

	var driveConnector, driveRemoteID, driveCategoryID, driveDestDir string
	var driveTags []string
	drive := &cobra.Command{
		Use:   "drive --connector <name> --remote <id>",
		Short: "Fetch a file from a drive connector, then upload it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(driveConnector) == "" || strings.TrimSpace(driveRemoteID) == "" {
				return fmt.Errorf("--connector and --remote are required")
			}
			if strings.TrimSpace(driveCategoryID) == "" {
				return fmt.Errorf("--category is required")
			}
			app, err := loadApp(*configPath, false)
			if err != nil {
				return err
			}
			defer app.Close()
			destDir := driveDestDir
			if destDir == "" {
				destDir = filepath.Join(os.TempDir(), "dochub-staging")
			}
			fetched, err := app.ConnectorCLI.Fetch(cmd.Context(), driveConnector, driveRemoteID, destDir)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "fetched %s (%s)\n", fetched.Name, humanize.Bytes(uint64(fetched.SizeBytes)))
			out, err := bootstrap.RunUpload(cmd.Context(), app, []string{fetched.LocalPath}, driveCategoryID, driveTags)
			if err != nil {
				return err
			}
			printUploadResult(cmd, out.Uploaded, out.Rejected, out.Warnings)
			return nil
		},
	}
	drive.Flags().StringVar(&driveConnector, "connector", "", "connector name")
	drive.Flags().StringVar(&driveRemoteID, "remote", "", "remote file id")
	drive.Flags().StringVar(&driveCategoryID, "category", "", "category id")
	drive.Flags().StringSliceVar(&driveTags, "tags", nil, "tags")
	drive.Flags().StringVar(&driveDestDir, "dest-dir", "", "staging directory (default under the OS temp dir)")

	upload.AddCommand(local, drive)
	return upload
}

func printUploadResult(cmd *cobra.Command, uploaded int, rejected, warnings []string) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "uploaded %d file(s)\n", uploaded)
	for _, w := range warnings {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", w)
	}
	for _, r := range rejected {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "skipped: %s\n", r)
	}
}

func newFilesCmd(configPath *string) *cobra.Command {
	files := &cobra.Command{Use: "files", Short: "Document catalog commands"}

	var force bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List ingested documents",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*configPath, false)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.LibraryCLI.ListFiles(cmd.Context(), force)
			if err != nil {
				return err
			}
			if out.Stale {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "backend unreachable — showing cached listing")
			}
			if len(out.Files) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no documents")
				return nil
			}
			for _, f := range out.Files {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\n",
					f.ID, f.Filename, f.Stage, humanize.Bytes(uint64(f.SizeBytes)), f.CreatedAt.Format(time.RFC3339))
			}
			return nil
		},
	}
	listCmd.Flags().BoolVar(&force, "refresh", false, "bypass the local cache")
	files.AddCommand(listCmd)

	var fileID string
	deleteCmd := &cobra.Command{
		Use:   "delete --id <id>",
		Short: "Delete a document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(fileID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*configPath, false)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.LibraryCLI.DeleteFile(cmd.Context(), fileID); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", fileID)
			return nil
		},
	}
	deleteCmd.Flags().StringVar(&fileID, "id", "", "document id")
	files.AddCommand(deleteCmd)

	files.AddCommand(&cobra.Command{
		Use:   "refresh",
		Short: "Refetch the catalog into the local cache",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*configPath, false)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.LibraryCLI.Refresh(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "cache refreshed")
			return nil
		},
	})

	return files
}

func newCategoriesCmd(configPath *string) *cobra.Command {
	categories := &cobra.Command{Use: "categories", Short: "Category administration"}

	var force bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*configPath, false)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.OrgCLI.ListCategories(cmd.Context(), force)
			if err != nil {
				return err
			}
			if len(out) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no categories")
				return nil
			}
			for _, c := range out {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", c.ID, c.Name, strings.Join(c.Tags, ","))
			}
			return nil
		},
	}
	listCmd.Flags().BoolVar(&force, "refresh", false, "bypass the local cache")
	categories.AddCommand(listCmd)

	var name string
	var tags []string
	createCmd := &cobra.Command{
		Use:   "create --name <name>",
		Short: "Create a category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("--name is required")
			}
			app, err := loadApp(*configPath, false)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.OrgCLI.CreateCategory(cmd.Context(), name, tags)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", out.Name, out.ID)
			return nil
		},
	}
	createCmd.Flags().StringVar(&name, "name", "", "category name")
	createCmd.Flags().StringSliceVar(&tags, "tags", nil, "tags")
	categories.AddCommand(createCmd)

	var updID, updName string
	var updTags []string
	updateCmd := &cobra.Command{
		Use:   "update --id <id>",
		Short: "Update a category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(updID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*configPath, false)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.OrgCLI.UpdateCategory(cmd.Context(), updID, updName, updTags)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %s (%s)\n", out.Name, out.ID)
			return nil
		},
	}
	updateCmd.Flags().StringVar(&updID, "id", "", "category id")
	updateCmd.Flags().StringVar(&updName, "name", "", "category name")
	updateCmd.Flags().StringSliceVar(&updTags, "tags", nil, "tags")
	categories.AddCommand(updateCmd)

	var delID string
	deleteCmd := &cobra.Command{
		Use:   "delete --id <id>",
		Short: "Delete a category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(delID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*configPath, false)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.OrgCLI.DeleteCategory(cmd.Context(), delID); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", delID)
			return nil
		},
	}
	deleteCmd.Flags().StringVar(&delID, "id", "", "category id")
	categories.AddCommand(deleteCmd)

	return categories
}

func newUsersCmd(configPath *string) *cobra.Command {
	users := &cobra.Command{Use: "users", Short: "Organization user administration"}

	var force bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List organization users",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*configPath, false)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.OrgCLI.ListUsers(cmd.Context(), force)
			if err != nil {
				return err
			}
			if len(out) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no users")
				return nil
			}
			for _, u := range out {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\tactive=%t\n", u.ID, u.Name, u.Email, u.Role, u.Active)
			}
			return nil
		},
	}
	listCmd.Flags().BoolVar(&force, "refresh", false, "bypass the local cache")
	users.AddCommand(listCmd)

	var name, email, password string
	createCmd := &cobra.Command{
		Use:   "create --name <name> --email <email>",
		Short: "Create an organization user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
				return fmt.Errorf("--name and --email are required")
			}
			if strings.TrimSpace(password) == "" {
				return fmt.Errorf("--password is required")
			}
			app, err := loadApp(*configPath, false)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.OrgCLI.CreateUser(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %s <%s> (%s)\n", out.Name, out.Email, out.ID)
			return nil
		},
	}
	createCmd.Flags().StringVar(&name, "name", "", "user name")
	createCmd.Flags().StringVar(&email, "email", "", "user email")
	createCmd.Flags().StringVar(&password, "password", "", "initial password")
	users.AddCommand(createCmd)

	var updID, updName, updEmail, updRole string
	var updActive bool
	updateCmd := &cobra.Command{
		Use:   "update --id <id>",
		Short: "Update an organization user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(updID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*configPath, false)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.OrgCLI.UpdateUser(cmd.Context(), orgdto.UpdateUserInput{
				ID:     updID,
				Name:   updName,
				Email:  updEmail,
				Role:   updRole,
				Active: updActive,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %s <%s> (%s)\n", out.Name, out.Email, out.ID)
			return nil
		},
	}
	updateCmd.Flags().StringVar(&updID, "id", "", "user id")
	updateCmd.Flags().StringVar(&updName, "name", "", "user name")
	updateCmd.Flags().StringVar(&updEmail, "email", "", "user email")
	updateCmd.Flags().StringVar(&updRole, "role", "", "user role")
	updateCmd.Flags().BoolVar(&updActive, "active", true, "whether the account is active")
	users.AddCommand(updateCmd)

	var delID string
	deleteCmd := &cobra.Command{
		Use:   "delete --id <id>",
		Short: "Delete an organization user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(delID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*configPath, false)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.OrgCLI.DeleteUser(cmd.Context(), delID); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", delID)
			return nil
		},
	}
	deleteCmd.Flags().StringVar(&delID, "id", "", "user id")
	users.AddCommand(deleteCmd)

	return users
}

func newChatCmd(configPath *string) *cobra.Command {
	chat := &cobra.Command{Use: "chat", Short: "Chat with the document corpus"}

	chat.AddCommand(&cobra.Command{
		Use:   "new <name>",
		Short: "Create a chat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*configPath, false)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.ChatCLI.CreateChat(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created chat %s (%s)\n", out.Name, out.ID)
			return nil
		},
	})

	chat.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List chats",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*configPath, false)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.ChatCLI.ListChats(cmd.Context())
			if err != nil {
				return err
			}
			if len(out) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no chats")
				return nil
			}
			for _, c := range out {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", c.ID, c.Name, c.CreatedAt.Format(time.RFC3339))
			}
			return nil
		},
	})

	var chatID string
	send := &cobra.Command{
		Use:   "send --chat <id> <message>",
		Short: "Send a message and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(chatID) == "" {
				return fmt.Errorf("--chat is required")
			}
			app, err := loadApp(*configPath, false)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.ChatCLI.SendMessage(cmd.Context(), chatID, strings.Join(args, " "))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Reply.Content)
			for _, src := range out.Reply.Sources {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "source: %s\n", src)
			}
			return nil
		},
	}
	send.Flags().StringVar(&chatID, "chat", "", "chat id")
	chat.AddCommand(send)

	var messagesChatID string
	messages := &cobra.Command{
		Use:   "messages --chat <id>",
		Short: "Print a chat's message history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(messagesChatID) == "" {
				return fmt.Errorf("--chat is required")
			}
			app, err := loadApp(*configPath, false)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.ChatCLI.ListMessages(cmd.Context(), messagesChatID)
			if err != nil {
				return err
			}
			for _, m := range out {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", m.Role, m.Content)
			}
			return nil
		},
	}
	messages.Flags().StringVar(&messagesChatID, "chat", "", "chat id")
	chat.AddCommand(messages)

	var renameID, renameName string
	rename := &cobra.Command{
		Use:   "rename --chat <id> --name <name>",
		Short: "Rename a chat",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(renameID) == "" || strings.TrimSpace(renameName) == "" {
				return fmt.Errorf("--chat and --name are required")
			}
			app, err := loadApp(*configPath, false)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.ChatCLI.RenameChat(cmd.Context(), renameID, renameName)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "renamed to %s\n", out.Name)
			return nil
		},
	}
	rename.Flags().StringVar(&renameID, "chat", "", "chat id")
	rename.Flags().StringVar(&renameName, "name", "", "new chat name")
	chat.AddCommand(rename)

	var deleteID string
	deleteCmd := &cobra.Command{
		Use:   "delete --chat <id>",
		Short: "Delete a chat",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(deleteID) == "" {
				return fmt.Errorf("--chat is required")
			}
			app, err := loadApp(*configPath, false)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.ChatCLI.DeleteChat(cmd.Context(), deleteID); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", deleteID)
			return nil
		},
	}
	deleteCmd.Flags().StringVar(&deleteID, "chat", "", "chat id")
	chat.AddCommand(deleteCmd)

	return chat
}

func newConnectorCmd(configPath *string) *cobra.Command {
	connector := &cobra.Command{Use: "connector", Short: "Drive connector operations"}

	connector.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List connector manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*configPath, false)
			if err != nil {
				return err
			}
			defer app.Close()
			connectors, err := app.ConnectorCLI.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(connectors) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no connectors configured")
				return nil
			}
			for _, c := range connectors {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t binary=%s\n", c.Name, c.Version, c.Enabled, c.Binary)
			}
			return nil
		},
	})

	connector.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Validate connector checksums and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*configPath, false)
			if err != nil {
				return err
			}
			defer app.Close()
			results, err := app.ConnectorCLI.Check(cmd.Context())
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no connectors configured")
				return nil
			}
			for _, r := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s checksum=%t binary=%t lifecycle=%t", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
				if r.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	})

	var filesConnector string
	filesCmd := &cobra.Command{
		Use:   "files --connector <name>",
		Short: "List files a connector can fetch",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(filesConnector) == "" {
				return fmt.Errorf("--connector is required")
			}
			app, err := loadApp(*configPath, false)
			if err != nil {
				return err
			}
			defer app.Close()
			remoteFiles, err := app.ConnectorCLI.ListFiles(cmd.Context(), filesConnector)
			if err != nil {
				return err
			}
			if len(remoteFiles) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no remote files")
				return nil
			}
			for _, f := range remoteFiles {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", f.ID, f.Name, humanize.Bytes(uint64(f.SizeBytes)))
			}
			return nil
		},
	}
	filesCmd.Flags().StringVar(&filesConnector, "connector", "", "connector name")
	connector.AddCommand(filesCmd)

	return connector
}

func newWatchCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow document status events and keep the cache current",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*configPath, true)
			if err != nil {
				return err
			}
			defer app.Close()
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			return app.Watch.Watch(ctx)
		},
	}
}
