package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jansuchomel/cadence/internal/config"
	"github.com/jansuchomel/cadence/internal/fsbrowser"
	"github.com/jansuchomel/cadence/internal/library"
	"github.com/jansuchomel/cadence/internal/musicstorage"
	"github.com/jansuchomel/cadence/internal/player"
	"github.com/jansuchomel/cadence/internal/podcasts"
	"github.com/jansuchomel/cadence/internal/tasks"
	"github.com/jansuchomel/cadence/internal/theme"
	"github.com/jansuchomel/cadence/internal/ui"
)

// Mode represents the current input mode.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeInput
	ModeCommand
	ModeConfirm
	ModeError
	ModeHelp
)

func (m Mode) String() string {
	switch m {
	case ModeBrowse:
		return "BROWSE"
	case ModeInput:
		return "INPUT"
	case ModeCommand:
		return "COMMAND"
	case ModeConfirm:
		return "CONFIRM"
	case ModeError:
		return "ERROR"
	case ModeHelp:
		return "HELP"
	default:
		return "UNKNOWN"
	}
}

// Messages

type dirChangedMsg string

type progressMsg player.Status

type playbackDoneMsg struct{}

type trackStartedMsg struct {
	track player.QueuedTrack
	err   error
}

type deleteFinishedMsg struct {
	result musicstorage.DeleteResult
	total  int
}

type importFinishedMsg struct {
	result library.ImportResult
	moved  bool
}

type podcastsLoadedMsg struct {
	page podcasts.SourcePage
	err  error
}

type showLoadedMsg struct {
	show *podcasts.Podcast
	err  error
}

// navEvents buffers the events the navigator emits while a key handler
// runs, so the handler can turn them into commands afterwards.
type navEvents struct {
	load    []string
	queue   []string
	copyLib []string
	moveLib []string
}

func (ev *navEvents) reset() {
	ev.load = nil
	ev.queue = nil
	ev.copyLib = nil
	ev.moveLib = nil
}

// Model is the main application model.
type Model struct {
	keys   KeyMap
	cfg    *config.Config
	logger *slog.Logger

	nav     *fsbrowser.Navigator
	lister  *fsbrowser.CachedLister
	watcher *fsbrowser.Watcher
	events  *navEvents

	tasks      *tasks.Manager
	storage    *musicstorage.Filesystem
	importer   *library.Importer
	trackStore *library.TrackStore
	recent     *library.RecentStore
	queueStore *library.QueueStore

	player *player.Player
	queue  *player.Queue

	feeds      *podcasts.FeedClient
	searchPage *podcasts.ITunesPage
	feedPage   *podcasts.FixedURLPage

	mode   Mode
	width  int
	height int

	sourceBar  ui.SourceBar
	pathBar    *ui.PathBar
	browser    *ui.BrowserPanel
	libPanel   ui.LibraryPanel
	podPanel   ui.PodcastPanel
	statusBar  ui.StatusBar
	commandBar ui.CommandBar
	helpView   ui.HelpView
	confirm    ui.ConfirmDialog
	errDialog  ui.ErrorDialog

	pendingDelete []string
	libFilter     string
	nowPlaying    string
}

// New creates the application model and wires all components together.
func New(cfg *config.Config, logger *slog.Logger, db *library.DB, dataDir string) (Model, error) {
	lister := fsbrowser.NewCachedLister(fsbrowser.OSLister{}, 64)
	nav := fsbrowser.NewNavigator(lister)

	watcher, err := fsbrowser.NewWatcher(logger)
	if err != nil {
		return Model{}, fmt.Errorf("creating watcher: %w", err)
	}

	recent, err := library.NewRecentStore(dataDir)
	if err != nil {
		return Model{}, fmt.Errorf("opening recent store: %w", err)
	}

	storage := musicstorage.NewFilesystem("/")
	trackStore := library.NewTrackStore(db)
	queueStore := library.NewQueueStore(db)

	m := Model{
		keys:   DefaultKeyMap(),
		cfg:    cfg,
		logger: logger,

		nav:     nav,
		lister:  lister,
		watcher: watcher,
		events:  &navEvents{},

		tasks:      tasks.NewManager(),
		storage:    storage,
		importer:   library.NewImporter(storage, trackStore, cfg.LibraryDir),
		trackStore: trackStore,
		recent:     recent,
		queueStore: queueStore,

		player: player.NewPlayer(),
		queue:  player.NewQueue(),

		feeds:      podcasts.NewFeedClient(),
		searchPage: podcasts.NewITunesPage(cfg.SearchEndpoint),
		feedPage:   podcasts.NewFixedURLPage(),

		mode: ModeBrowse,

		sourceBar:  ui.NewSourceBar(),
		pathBar:    newPathBar(),
		browser:    newBrowserPanel(),
		libPanel:   ui.NewLibraryPanel(),
		podPanel:   ui.NewPodcastPanel(),
		statusBar:  ui.NewStatusBar(),
		commandBar: ui.NewCommandBar(),
		helpView:   ui.NewHelpView(),
		confirm:    ui.NewConfirmDialog(),
		errDialog:  ui.NewErrorDialog(),
	}

	browser := m.browser
	pathBar := m.pathBar
	ev := m.events

	nav.CaptureView = func() (int, string) {
		return browser.ScrollPos(), browser.SelectedName()
	}
	nav.RestoreView = func(scrollPos int, selected string) {
		browser.RestoreView(scrollPos, selected)
	}
	nav.OnPathChanged(func(p string) {
		pathBar.SetPath(p)
		browser.SetEntries(nav.Entries(), nav.Err())
		watcher.SetRoot(p)
	})
	nav.OnLoad(func(urls []string) {
		ev.load = append(ev.load, urls...)
	})
	nav.OnAppendToQueue(func(urls []string) {
		ev.queue = append(ev.queue, urls...)
	})
	nav.OnCopyToLibrary(func(paths []string) {
		ev.copyLib = append(ev.copyLib, paths...)
	})
	nav.OnMoveToLibrary(func(paths []string) {
		ev.moveLib = append(ev.moveLib, paths...)
	})

	m.searchPage.OnBusy(func(busy bool) {
		logger.Debug("podcast search state", "busy", busy)
	})
	m.feedPage.OnBusy(func(busy bool) {
		logger.Debug("feed load state", "busy", busy)
	})

	if cfg.StartPath != "" {
		nav.SetPath(cfg.StartPath)
	}
	nav.Activate()

	if items, err := queueStore.List(); err == nil {
		for _, it := range items {
			m.queue.Append(player.QueuedTrack{URL: it.URL, Title: it.Title})
		}
	} else {
		logger.Warn("restoring queue failed", "error", err)
	}

	m.libPanel.SetTracks(trackStore.List(), "")
	m.statusBar.SetMode(m.mode.String())
	m.statusBar.SetEntryCount(len(nav.Entries()))

	return m, nil
}

func newPathBar() *ui.PathBar {
	pb := ui.NewPathBar()
	return &pb
}

func newBrowserPanel() *ui.BrowserPanel {
	bp := ui.NewBrowserPanel()
	return &bp
}

// Init starts the background listeners for file watching and playback.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.waitForDirChange(),
		m.waitForProgress(),
		m.waitForDone(),
	)
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case dirChangedMsg:
		m.lister.Invalidate(string(msg))
		if string(msg) == m.nav.Root() {
			m.nav.Refresh()
			m.browser.RefreshEntries(m.nav.Entries(), m.nav.Err())
			m.statusBar.SetEntryCount(len(m.nav.Entries()))
		}
		return m, m.waitForDirChange()

	case trackStartedMsg:
		if msg.err != nil {
			m.logger.Error("playback failed", "url", msg.track.URL, "error", msg.err)
			m.statusBar.SetMessage(fmt.Sprintf("playback failed: %v", msg.err))
			return m, nil
		}
		m.nowPlaying = msg.track.Title
		m.recent.Add(msg.track.URL, msg.track.Title)
		m.statusBar.SetNowPlaying(m.nowPlaying, 0, 0, true)
		return m, nil

	case progressMsg:
		if m.nowPlaying != "" {
			m.statusBar.SetNowPlaying(m.nowPlaying, msg.Current, msg.Total, msg.IsPlaying)
		}
		return m, m.waitForProgress()

	case playbackDoneMsg:
		if track, ok := m.queue.Next(); ok {
			return m, tea.Batch(m.playTrack(track), m.waitForDone())
		}
		m.nowPlaying = ""
		m.statusBar.ClearNowPlaying()
		return m, m.waitForDone()

	case deleteFinishedMsg:
		m.statusBar.ClearTask()
		m.lister.Invalidate(m.nav.Root())
		m.nav.Refresh()
		m.browser.RefreshEntries(m.nav.Entries(), m.nav.Err())
		m.browser.ClearMarks()
		m.statusBar.SetEntryCount(len(m.nav.Entries()))
		deleted := msg.total - len(msg.result.Failed)
		m.statusBar.SetMessage(fmt.Sprintf("Deleted %d of %d files", deleted, msg.total))
		if len(msg.result.Failed) > 0 {
			m.errDialog.ShowDeleteErrors(msg.result.Failed)
			m.setMode(ModeError)
		}
		return m, nil

	case importFinishedMsg:
		m.statusBar.ClearTask()
		verb := "Copied"
		if msg.moved {
			verb = "Moved"
			m.lister.Invalidate(m.nav.Root())
			m.nav.Refresh()
			m.browser.RefreshEntries(m.nav.Entries(), m.nav.Err())
			m.statusBar.SetEntryCount(len(m.nav.Entries()))
		}
		m.browser.ClearMarks()
		if len(msg.result.Failed) > 0 {
			m.statusBar.SetMessage(fmt.Sprintf("%s %d tracks to library, %d failed",
				verb, msg.result.Imported, len(msg.result.Failed)))
		} else {
			m.statusBar.SetMessage(fmt.Sprintf("%s %d tracks to library", verb, msg.result.Imported))
		}
		m.libPanel.SetTracks(m.filteredTracks(), m.libFilter)
		return m, nil

	case podcastsLoadedMsg:
		m.podPanel.SetBusy(false)
		if msg.err != nil {
			m.statusBar.SetMessage(fmt.Sprintf("podcast search failed: %v", msg.err))
			return m, nil
		}
		shows := msg.page.Model().Podcasts()
		m.podPanel.SetShows(shows)
		m.statusBar.SetMessage(fmt.Sprintf("%d podcasts found", len(shows)))
		return m, nil

	case showLoadedMsg:
		m.podPanel.SetBusy(false)
		if msg.err != nil {
			m.statusBar.SetMessage(fmt.Sprintf("loading feed failed: %v", msg.err))
			return m, nil
		}
		m.podPanel.OpenShow(*msg.show)
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeInput:
		return m.handleInputMode(msg)
	case ModeCommand:
		return m.handleCommandMode(msg)
	case ModeConfirm:
		return m.handleConfirmMode(msg)
	case ModeError:
		m.errDialog.Hide()
		m.setMode(ModeBrowse)
		return m, nil
	case ModeHelp:
		return m.handleHelpMode(msg)
	default:
		return m.handleBrowseMode(msg)
	}
}

func (m Model) handleBrowseMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() != "g" {
		m.browser.ResetGKey()
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.helpView.Show()
		m.setMode(ModeHelp)
		return m, nil

	case key.Matches(msg, m.keys.CommandMode):
		m.setMode(ModeCommand)
		return m, m.commandBar.Open(ui.CommandEx)

	case key.Matches(msg, m.keys.SearchMode):
		m.setMode(ModeCommand)
		return m, m.commandBar.Open(ui.CommandSearch)

	case key.Matches(msg, m.keys.NextSource):
		m.sourceBar.Next()
		m.enterSource()
		return m, nil

	case key.Matches(msg, m.keys.PrevSource):
		m.sourceBar.Prev()
		m.enterSource()
		return m, nil

	case key.Matches(msg, m.keys.PlayPause):
		if m.player.CurrentURL() != "" {
			m.player.Pause()
			return m, nil
		}
		if track, ok := m.queue.Current(); ok {
			return m, m.playTrack(track)
		}
		m.statusBar.SetMessage("queue is empty")
		return m, nil

	case key.Matches(msg, m.keys.NextTrack):
		if track, ok := m.queue.Next(); ok {
			return m, m.playTrack(track)
		}
		m.statusBar.SetMessage("end of queue")
		return m, nil

	case key.Matches(msg, m.keys.PrevTrack):
		if track, ok := m.queue.Prev(); ok {
			return m, m.playTrack(track)
		}
		m.statusBar.SetMessage("start of queue")
		return m, nil

	case key.Matches(msg, m.keys.Stop):
		m.player.Stop()
		m.nowPlaying = ""
		m.statusBar.ClearNowPlaying()
		return m, nil
	}

	switch m.sourceBar.Active() {
	case ui.SourceLibrary:
		return m.handleLibraryKeys(msg)
	case ui.SourcePodcasts:
		return m.handlePodcastKeys(msg)
	default:
		return m.handleFileKeys(msg)
	}
}

func (m Model) handleFileKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.CursorDown):
		m.browser.CursorDown()
	case key.Matches(msg, m.keys.CursorUp):
		m.browser.CursorUp()
	case key.Matches(msg, m.keys.HalfPageDown):
		m.browser.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.browser.HalfPageUp()
	case key.Matches(msg, m.keys.GotoTop):
		if m.browser.HandleGKey() {
			m.browser.GotoTop()
		}
	case key.Matches(msg, m.keys.GotoBottom):
		m.browser.GotoBottom()

	case key.Matches(msg, m.keys.Activate):
		entry := m.browser.Selected()
		if entry == nil {
			return m, nil
		}
		if entry.Dir {
			m.nav.ActivateEntry(entry.Name)
			m.statusBar.SetEntryCount(len(m.nav.Entries()))
			return m, nil
		}
		m.nav.OpenEntry(entry.Name)
		return m, m.drainNavEvents()

	case key.Matches(msg, m.keys.Up):
		if m.nav.UpEnabled() {
			m.nav.NavigateUp()
			m.statusBar.SetEntryCount(len(m.nav.Entries()))
		}

	case key.Matches(msg, m.keys.Home):
		m.nav.NavigateHome()
		m.statusBar.SetEntryCount(len(m.nav.Entries()))

	case key.Matches(msg, m.keys.Undo):
		if m.nav.CanUndo() {
			m.nav.Undo()
			m.statusBar.SetEntryCount(len(m.nav.Entries()))
		} else {
			m.statusBar.SetMessage("nothing to undo")
		}

	case key.Matches(msg, m.keys.Redo):
		if m.nav.CanRedo() {
			m.nav.Redo()
			m.statusBar.SetEntryCount(len(m.nav.Entries()))
		} else {
			m.statusBar.SetMessage("nothing to redo")
		}

	case key.Matches(msg, m.keys.Refresh):
		m.lister.Invalidate(m.nav.Root())
		m.nav.Refresh()
		m.browser.RefreshEntries(m.nav.Entries(), m.nav.Err())
		m.statusBar.SetEntryCount(len(m.nav.Entries()))

	case key.Matches(msg, m.keys.EditPath):
		m.setMode(ModeInput)
		return m, m.pathBar.Focus()

	case key.Matches(msg, m.keys.Mark):
		m.browser.ToggleMark()

	case key.Matches(msg, m.keys.Queue):
		m.nav.AppendToQueue(m.browser.MarkedNames())
		m.browser.ClearMarks()
		return m, m.drainNavEvents()

	case key.Matches(msg, m.keys.CopyLib):
		m.nav.CopyToLibrary(m.browser.MarkedNames())
		return m, m.drainNavEvents()

	case key.Matches(msg, m.keys.MoveLib):
		m.nav.MoveToLibrary(m.browser.MarkedNames())
		return m, m.drainNavEvents()

	case key.Matches(msg, m.keys.Delete):
		names := m.markedFiles()
		if len(names) == 0 {
			m.statusBar.SetMessage("no files selected")
			return m, nil
		}
		m.pendingDelete = m.nav.ResolvePaths(names)
		m.confirm.ShowDelete(names)
		m.setMode(ModeConfirm)
	}

	return m, nil
}

func (m Model) handleLibraryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.CursorDown):
		m.libPanel.CursorDown()
	case key.Matches(msg, m.keys.CursorUp):
		m.libPanel.CursorUp()
	case key.Matches(msg, m.keys.GotoTop):
		m.libPanel.GotoTop()
	case key.Matches(msg, m.keys.GotoBottom):
		m.libPanel.GotoBottom()

	case key.Matches(msg, m.keys.Activate):
		track := m.libPanel.Selected()
		if track == nil {
			return m, nil
		}
		qt := player.QueuedTrack{URL: track.Path, Title: trackTitle(*track)}
		start := m.queue.Len()
		m.queue.Append(qt)
		m.queue.Jump(start)
		m.persistQueue()
		return m, m.playTrack(qt)

	case key.Matches(msg, m.keys.Queue):
		track := m.libPanel.Selected()
		if track == nil {
			return m, nil
		}
		m.queue.Append(player.QueuedTrack{URL: track.Path, Title: trackTitle(*track)})
		m.persistQueue()
		m.statusBar.SetMessage(fmt.Sprintf("queued %s", trackTitle(*track)))

	case key.Matches(msg, m.keys.Delete):
		track := m.libPanel.Selected()
		if track == nil {
			return m, nil
		}
		if m.trackStore.Remove(track.Path) {
			m.statusBar.SetMessage(fmt.Sprintf("removed %s from library", trackTitle(*track)))
			m.libPanel.SetTracks(m.filteredTracks(), m.libFilter)
		}
	}

	return m, nil
}

func (m Model) handlePodcastKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.CursorDown):
		m.podPanel.CursorDown()
	case key.Matches(msg, m.keys.CursorUp):
		m.podPanel.CursorUp()
	case key.Matches(msg, m.keys.GotoTop):
		m.podPanel.GotoTop()
	case key.Matches(msg, m.keys.GotoBottom):
		m.podPanel.GotoBottom()

	case key.Matches(msg, m.keys.Up):
		m.podPanel.Back()

	case key.Matches(msg, m.keys.Activate):
		if m.podPanel.InEpisodes() {
			ep := m.podPanel.SelectedEpisode()
			if ep == nil || ep.URL == "" {
				return m, nil
			}
			qt := player.QueuedTrack{URL: ep.URL, Title: ep.Title}
			start := m.queue.Len()
			m.queue.Append(qt)
			m.queue.Jump(start)
			m.persistQueue()
			return m, m.playTrack(qt)
		}
		show := m.podPanel.SelectedShow()
		if show == nil {
			return m, nil
		}
		if len(show.Episodes) > 0 {
			m.podPanel.OpenShow(*show)
			return m, nil
		}
		m.podPanel.SetBusy(true)
		return m, m.loadShow(show.URL)

	case key.Matches(msg, m.keys.Queue):
		if !m.podPanel.InEpisodes() {
			return m, nil
		}
		ep := m.podPanel.SelectedEpisode()
		if ep == nil || ep.URL == "" {
			return m, nil
		}
		m.queue.Append(player.QueuedTrack{URL: ep.URL, Title: ep.Title})
		m.persistQueue()
		m.statusBar.SetMessage(fmt.Sprintf("queued %s", ep.Title))
	}

	return m, nil
}

func (m Model) handleInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pathBar.Blur()
		m.setMode(ModeBrowse)
		return m, nil
	case "enter":
		target := strings.TrimSpace(m.pathBar.Value())
		m.pathBar.Blur()
		m.setMode(ModeBrowse)
		if target != "" {
			m.nav.RequestPathChange(target)
			m.statusBar.SetEntryCount(len(m.nav.Entries()))
			if err := m.nav.Err(); err != nil {
				m.statusBar.SetMessage(fmt.Sprintf("cannot open %s: %v", target, err))
			}
		}
		return m, nil
	}

	_, cmd := m.pathBar.Update(msg)
	return m, cmd
}

func (m Model) handleCommandMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.commandBar.Close()
		m.setMode(ModeBrowse)
		return m, nil
	case "enter":
		result := m.commandBar.Submit()
		m.setMode(ModeBrowse)
		if result.Type == ui.CommandSearch {
			return m.executeSearch(result.Value)
		}
		return m.executeCommand(result.Value)
	}

	cb, cmd := m.commandBar.Update(msg)
	m.commandBar = *cb
	return m, cmd
}

func (m Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		paths := m.pendingDelete
		m.pendingDelete = nil
		m.confirm.Hide()
		m.setMode(ModeBrowse)
		m.statusBar.SetTask("deleting", 0, len(paths))
		return m, m.deleteFiles(paths)
	case "n", "N", "esc", "q":
		m.pendingDelete = nil
		m.confirm.Hide()
		m.setMode(ModeBrowse)
		m.statusBar.SetMessage("delete cancelled")
	}
	return m, nil
}

func (m Model) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "?":
		m.helpView.Hide()
		m.setMode(ModeBrowse)
		return m, nil
	}

	hv, cmd := m.helpView.Update(msg)
	m.helpView = *hv
	return m, cmd
}

func (m Model) executeCommand(input string) (tea.Model, tea.Cmd) {
	input = strings.TrimSpace(input)
	if input == "" {
		return m, nil
	}

	parts := strings.SplitN(input, " ", 2)
	cmd := parts[0]
	arg := ""
	if len(parts) > 1 {
		arg = strings.TrimSpace(parts[1])
	}

	switch cmd {
	case "q", "quit":
		return m.quit()

	case "open":
		if arg == "" {
			m.statusBar.SetMessage("usage: :open <path>")
			return m, nil
		}
		m.sourceBar.Select(ui.SourceFiles)
		m.nav.RequestPathChange(arg)
		m.statusBar.SetEntryCount(len(m.nav.Entries()))
		if err := m.nav.Err(); err != nil {
			m.statusBar.SetMessage(fmt.Sprintf("cannot open %s: %v", arg, err))
		}

	case "theme":
		if arg == "" {
			m.statusBar.SetMessage("themes: " + strings.Join(theme.List(), ", "))
			return m, nil
		}
		if theme.Set(arg) {
			m.cfg.Theme = arg
			if err := m.cfg.Save(); err != nil {
				m.logger.Warn("saving config failed", "error", err)
			}
			m.statusBar.SetMessage("theme: " + arg)
		} else {
			m.statusBar.SetMessage("unknown theme: " + arg)
		}

	case "clear":
		m.player.Stop()
		m.nowPlaying = ""
		m.statusBar.ClearNowPlaying()
		m.queue.Clear()
		if err := m.queueStore.Clear(); err != nil {
			m.logger.Warn("clearing queue failed", "error", err)
		}
		m.statusBar.SetMessage("queue cleared")

	case "feed":
		if arg == "" {
			m.statusBar.SetMessage("usage: :feed <url>")
			return m, nil
		}
		m.sourceBar.Select(ui.SourcePodcasts)
		m.enterSource()
		m.podPanel.SetBusy(true)
		return m, m.searchPodcasts(m.feedPage, arg)

	case "help":
		m.helpView.Show()
		m.setMode(ModeHelp)

	default:
		m.statusBar.SetMessage("unknown command: " + cmd)
	}

	return m, nil
}

func (m Model) executeSearch(query string) (tea.Model, tea.Cmd) {
	query = strings.TrimSpace(query)
	if query == "" {
		return m, nil
	}

	switch m.sourceBar.Active() {
	case ui.SourceLibrary:
		m.libFilter = query
		tracks := m.trackStore.Search(query)
		m.libPanel.SetTracks(tracks, query)
		m.statusBar.SetMessage(fmt.Sprintf("%d tracks match", len(tracks)))
		return m, nil

	case ui.SourcePodcasts:
		m.podPanel.SetBusy(true)
		return m, m.searchPodcasts(m.searchPage, query)

	default:
		lower := strings.ToLower(query)
		for _, e := range m.nav.Entries() {
			if strings.Contains(strings.ToLower(e.Name), lower) {
				m.browser.RestoreView(m.browser.ScrollPos(), e.Name)
				return m, nil
			}
		}
		m.statusBar.SetMessage("no match: " + query)
		return m, nil
	}
}

// Commands

func (m Model) waitForDirChange() tea.Cmd {
	ch := m.watcher.Changes()
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return dirChangedMsg(p)
	}
}

func (m Model) waitForProgress() tea.Cmd {
	ch := m.player.Progress()
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return nil
		}
		return progressMsg(st)
	}
}

func (m Model) waitForDone() tea.Cmd {
	ch := m.player.Done()
	return func() tea.Msg {
		_, ok := <-ch
		if !ok {
			return nil
		}
		return playbackDoneMsg{}
	}
}

func (m Model) playTrack(track player.QueuedTrack) tea.Cmd {
	p := m.player
	return func() tea.Msg {
		err := p.Play(track.URL)
		return trackStartedMsg{track: track, err: err}
	}
}

func (m Model) deleteFiles(paths []string) tea.Cmd {
	tm, st := m.tasks, m.storage
	return func() tea.Msg {
		res := musicstorage.DeleteFiles(context.Background(), tm, st, paths)
		return deleteFinishedMsg{result: res, total: len(paths)}
	}
}

func (m Model) importFiles(paths []string, move bool) tea.Cmd {
	tm, im := m.tasks, m.importer
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		var res library.ImportResult
		if move {
			res = im.Move(ctx, tm, paths)
		} else {
			res = im.Copy(ctx, tm, paths)
		}
		return importFinishedMsg{result: res, moved: move}
	}
}

func (m Model) searchPodcasts(page podcasts.SourcePage, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		err := page.Search(ctx, query)
		return podcastsLoadedMsg{page: page, err: err}
	}
}

func (m Model) loadShow(feedURL string) tea.Cmd {
	feeds := m.feeds
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		show, err := feeds.Fetch(ctx, feedURL)
		return showLoadedMsg{show: show, err: err}
	}
}

// drainNavEvents converts navigator events buffered during the current
// key handler into queue changes and background commands.
func (m *Model) drainNavEvents() tea.Cmd {
	ev := m.events
	var cmds []tea.Cmd

	if len(ev.load) > 0 {
		start := m.queue.Len()
		for _, u := range ev.load {
			m.queue.Append(player.QueuedTrack{URL: u, Title: titleFromURL(u)})
		}
		if track, ok := m.queue.Jump(start); ok {
			cmds = append(cmds, m.playTrack(track))
		}
		m.persistQueue()
	}

	if len(ev.queue) > 0 {
		for _, u := range ev.queue {
			m.queue.Append(player.QueuedTrack{URL: u, Title: titleFromURL(u)})
		}
		m.persistQueue()
		m.statusBar.SetMessage(fmt.Sprintf("queued %d tracks", len(ev.queue)))
	}

	if len(ev.copyLib) > 0 {
		m.statusBar.SetTask("copying to library", 0, len(ev.copyLib))
		cmds = append(cmds, m.importFiles(ev.copyLib, false))
	}

	if len(ev.moveLib) > 0 {
		m.statusBar.SetTask("moving to library", 0, len(ev.moveLib))
		cmds = append(cmds, m.importFiles(ev.moveLib, true))
	}

	ev.reset()

	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) persistQueue() {
	tracks := m.queue.Tracks()
	items := make([]library.QueueItem, len(tracks))
	for i, t := range tracks {
		items[i] = library.QueueItem{Position: i, URL: t.URL, Title: t.Title}
	}
	if err := m.queueStore.Replace(items); err != nil {
		m.logger.Warn("persisting queue failed", "error", err)
	}
}

// markedFiles returns the marked entry names that refer to files.
func (m *Model) markedFiles() []string {
	dirs := make(map[string]bool)
	for _, e := range m.nav.Entries() {
		if e.Dir {
			dirs[e.Name] = true
		}
	}
	var names []string
	for _, n := range m.browser.MarkedNames() {
		if !dirs[n] {
			names = append(names, n)
		}
	}
	return names
}

func (m *Model) filteredTracks() []library.Track {
	if m.libFilter != "" {
		return m.trackStore.Search(m.libFilter)
	}
	return m.trackStore.List()
}

func (m *Model) setMode(mode Mode) {
	m.mode = mode
	m.statusBar.SetMode(mode.String())
	m.layout()
}

// enterSource refreshes the panel backing the newly selected source.
func (m *Model) enterSource() {
	switch m.sourceBar.Active() {
	case ui.SourceLibrary:
		m.libPanel.SetTracks(m.filteredTracks(), m.libFilter)
		m.statusBar.SetEntryCount(m.libPanel.Count())
	case ui.SourcePodcasts:
		m.statusBar.SetEntryCount(0)
	default:
		m.statusBar.SetEntryCount(len(m.nav.Entries()))
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.persistQueue()
	if err := m.player.Close(); err != nil {
		m.logger.Warn("closing player failed", "error", err)
	}
	if err := m.watcher.Close(); err != nil {
		m.logger.Warn("closing watcher failed", "error", err)
	}
	return m, tea.Quit
}

func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	sourceBarHeight := 1
	pathBarHeight := 3
	statusBarHeight := 1
	commandBarHeight := 0
	if m.commandBar.IsActive() {
		commandBarHeight = 1
	}

	contentHeight := m.height - sourceBarHeight - pathBarHeight - statusBarHeight - commandBarHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	m.sourceBar.SetWidth(m.width)
	m.pathBar.SetWidth(m.width)
	m.statusBar.SetWidth(m.width)
	m.commandBar.SetWidth(m.width)
	m.browser.SetSize(m.width, contentHeight)
	m.libPanel.SetSize(m.width, contentHeight)
	m.podPanel.SetSize(m.width, contentHeight)
	m.helpView.SetSize(m.width, contentHeight)
}

// View renders the whole application.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	var content string
	if m.mode == ModeHelp {
		content = m.helpView.View()
	} else {
		switch m.sourceBar.Active() {
		case ui.SourceLibrary:
			content = m.libPanel.View()
		case ui.SourcePodcasts:
			content = m.podPanel.View()
		default:
			content = m.browser.View()
		}
	}

	sections := []string{
		m.sourceBar.View(),
		m.pathBar.View(),
		content,
		m.statusBar.View(),
	}
	if m.commandBar.IsActive() {
		sections = append(sections, m.commandBar.View())
	}

	if m.confirm.IsVisible() {
		return m.overlay(m.confirm.View())
	}
	if m.errDialog.IsVisible() {
		return m.overlay(m.errDialog.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) overlay(dialog string) string {
	t := theme.Current
	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		dialog,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(t.TextDim),
	)
}

func titleFromURL(rawURL string) string {
	var base string
	switch {
	case strings.HasPrefix(rawURL, "file://"):
		base = filepath.Base(fsbrowser.LocalPath(rawURL))
	case strings.HasPrefix(rawURL, "http://"), strings.HasPrefix(rawURL, "https://"):
		if u, err := url.Parse(rawURL); err == nil {
			base = path.Base(u.Path)
		} else {
			base = path.Base(rawURL)
		}
	default:
		base = filepath.Base(rawURL)
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func trackTitle(t library.Track) string {
	if t.Artist != "" {
		return t.Artist + " - " + t.Title
	}
	return t.Title
}
