package bootstrap

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	chatinadapter "dochub/internal/modules/chat/adapter/in"
	chatoutadapter "dochub/internal/modules/chat/adapter/out"
	chatservice "dochub/internal/modules/chat/service"
	chatusecase "dochub/internal/modules/chat/usecase"
	connectorinadapter "dochub/internal/modules/connector/adapter/in"
	connectoroutadapter "dochub/internal/modules/connector/adapter/out"
	connectorservice "dochub/internal/modules/connector/service"
	connectorusecase "dochub/internal/modules/connector/usecase"
	ingestinadapter "dochub/internal/modules/ingest/adapter/in"
	ingestdomain "dochub/internal/modules/ingest/domain"
	ingestoutadapter "dochub/internal/modules/ingest/adapter/out"
	ingestout "dochub/internal/modules/ingest/port/out"
	ingestservice "dochub/internal/modules/ingest/service"
	ingestusecase "dochub/internal/modules/ingest/usecase"
	libraryinadapter "dochub/internal/modules/library/adapter/in"
	libraryoutadapter "dochub/internal/modules/library/adapter/out"
	libraryservice "dochub/internal/modules/library/service"
	libraryusecase "dochub/internal/modules/library/usecase"
	notifyoutadapter "dochub/internal/modules/notify/adapter/out"
	notifyservice "dochub/internal/modules/notify/service"
	notifyusecase "dochub/internal/modules/notify/usecase"
	notifyin "dochub/internal/modules/notify/port/in"
	orginadapter "dochub/internal/modules/org/adapter/in"
	orgoutadapter "dochub/internal/modules/org/adapter/out"
	orgservice "dochub/internal/modules/org/service"
	orgusecase "dochub/internal/modules/org/usecase"
	"dochub/internal/platform/clock"
	"dochub/internal/platform/config"
	"dochub/internal/platform/id"
	"dochub/internal/platform/rest"
	ingestdto "dochub/internal/modules/ingest/dto"
	uiapp "dochub/internal/ui/app"
	uploadsview "dochub/internal/ui/views/uploads"
)

// App is the composition root: every module wired against the shared
// rest client and the local cache database.
type App struct {
	IngestCLI    ingestinadapter.CLIHandler
	IngestTUI    ingestinadapter.TUIHandler
	LibraryCLI   libraryinadapter.CLIHandler
	LibraryTUI   libraryinadapter.TUIHandler
	OrgCLI       orginadapter.CLIHandler
	ChatCLI      chatinadapter.CLIHandler
	ConnectorCLI connectorinadapter.CLIHandler
	Watch        notifyin.Usecase

	fileCache *libraryoutadapter.SQLiteFileCache
	dirCache  *orgoutadapter.SQLiteDirectoryCache
}

func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.UUID{}
	api := rest.New(cfg.APIBaseURL, cfg.AuthToken, cfg.HTTPTimeout.Std())

	fileCache, err := libraryoutadapter.NewSQLiteFileCache(cfg.CacheDBPath)
	if err != nil {
		return nil, fmt.Errorf("open file cache: %w", err)
	}
	librarySvc := libraryservice.NewCatalogService(libraryoutadapter.NewHTTPFileAPI(api), fileCache)
	libraryUC := libraryusecase.NewInteractor(librarySvc)

	var transport ingestout.Transport
	var poller ingestout.StatusPoller
	if cfg.Upload.Mode == config.UploadModeSync {
		transport = ingestoutadapter.NewSyncTransport(api)
	} else {
		transport = ingestoutadapter.NewPolledTransport(api)
		poller = ingestoutadapter.NewHTTPStatusPoller(api, cfg.Upload.PollInterval.Std())
	}
	allow := ingestdomain.NewAllowList(cfg.Upload.AllowedMIMETypes, cfg.Upload.AllowedExtensions)
	orch := ingestservice.NewOrchestrator(
		clk, ids, allow,
		ingestoutadapter.NewLocalFileSource(),
		transport, poller,
		ingestoutadapter.NewPDFPreflight(),
		cfg.Upload.JobTimeout.Std(),
	)
	ingestUC := ingestusecase.NewInteractor(orch, libraryUC)

	dirCache, err := orgoutadapter.NewSQLiteDirectoryCache(cfg.CacheDBPath)
	if err != nil {
		fileCache.Close()
		return nil, fmt.Errorf("open directory cache: %w", err)
	}
	orgUC := orgusecase.NewInteractor(orgservice.NewDirectoryService(orgoutadapter.NewHTTPDirectoryAPI(api), dirCache))

	chatUC := chatusecase.NewInteractor(chatservice.NewChatService(chatoutadapter.NewHTTPChatAPI(api)))

	connectorUC := connectorusecase.NewInteractor(connectorservice.NewConnectorService(
		connectoroutadapter.NewYAMLManifestStore(cfg.ConnectorDir),
		connectoroutadapter.NewGRPCHost(),
	))

	watcher := notifyservice.NewWatcher(
		notifyoutadapter.NewWSListener(cfg.SocketURL, cfg.AuthToken),
		libraryUC,
		logger,
	)

	return &App{
		IngestCLI:    ingestinadapter.NewCLIHandler(ingestUC),
		IngestTUI:    ingestinadapter.NewTUIHandler(ingestUC),
		LibraryCLI:   libraryinadapter.NewCLIHandler(libraryUC),
		LibraryTUI:   libraryinadapter.NewTUIHandler(libraryUC),
		OrgCLI:       orginadapter.NewCLIHandler(orgUC),
		ChatCLI:      chatinadapter.NewCLIHandler(chatUC),
		ConnectorCLI: connectorinadapter.NewCLIHandler(connectorUC),
		Watch:        notifyusecase.NewInteractor(watcher),
		fileCache:    fileCache,
		dirCache:     dirCache,
	}, nil
}

// Close releases the cache database handles.
func (a *App) Close() error {
	var first error
	if err := a.fileCache.Close(); err != nil {
		first = err
	}
	if err := a.dirCache.Close(); err != nil && first == nil {
		first = err
	}
	return first
}

// RunTUI starts the tabbed terminal interface.
func RunTUI(app *App) error {
	model := uiapp.NewModel(app.LibraryTUI, app.IngestTUI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// RunUpload drives one upload behind the standalone progress screen.
// The job runs in its own goroutine and feeds snapshots to the view
// through program.Send; quitting the screen cancels the job.
func RunUpload(ctx context.Context, app *App, paths []string, categoryID string, tags []string) (ingestdto.UploadOutput, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := newUploadProgram()
	program := tea.NewProgram(model)

	type result struct {
		out ingestdto.UploadOutput
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, err := app.IngestCLI.Upload(ctx, paths, categoryID, tags, func(u ingestdto.ProgressUpdate) {
			program.Send(uploadsview.SnapshotMsg{Update: u})
		})
		program.Send(uploadsview.DoneMsg{Output: out, Err: err})
		done <- result{out: out, err: err}
	}()

	if _, err := program.Run(); err != nil {
		cancel()
		res := <-done
		return res.out, fmt.Errorf("progress screen: %w", err)
	}
	cancel()
	res := <-done
	return res.out, res.err
}
