package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/iEatFishFingers/deckflix/internal"
)

var downloader *internal.Downloader

// exitWith tears down any running downloader before leaving.
func exitWith(msg string, err error) {
	if downloader != nil {
		downloader.Sweep()
	}
	if msg != "" {
		fmt.Println(msg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}

func main() {
	debug := flag.Bool("debug", false, "Enable debug logging")
	editConfig := flag.Bool("e", false, "Edit configuration file")
	flag.Parse()

	internal.InitLogger(*debug)

	configPath := os.ExpandEnv("$HOME/.config/deckflix/config")

	if *editConfig {
		cmd := exec.Command("vim", configPath)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr

		if err := cmd.Run(); err != nil {
			exitWith("Failed to open config in vim", err)
		}
		return
	}

	internal.Debug("Loading config from default location")
	config, err := internal.LoadConfig(configPath)
	if err != nil {
		exitWith("Failed to load config", err)
	}
	internal.SetGlobalConfig(&config)
	internal.Debug("Config loaded successfully: %+v", config)

	downloader = internal.NewDownloader(&config)
	orchestrator := internal.NewOrchestrator(&config, downloader)
	history := internal.NewHistoryStore(&config)
	client := internal.NewAddonClient(internal.DefaultSources())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		downloader.Sweep()
		os.Exit(0)
	}()

	ctx := context.Background()

	// A magnet URI or torrent page URL can be passed straight on the command
	// line, bypassing the catalogs.
	if arg := flag.Arg(0); arg != "" {
		playDirect(ctx, orchestrator, history, arg)
		return
	}

	mainOptions := map[string]string{
		"1": "Browse Movies",
		"2": "Browse Series",
		"3": "Browse Anime",
		"4": "Search",
		"5": "Continue Watching",
		"6": "Quit",
	}

	selection, err := internal.DynamicSelect(mainOptions)
	if err != nil {
		exitWith("Error showing main menu", err)
	}

	switch selection.Key {
	case "1":
		browseCatalog(ctx, client, orchestrator, history, internal.KindMovie)
	case "2":
		browseCatalog(ctx, client, orchestrator, history, internal.KindSeries)
	case "3":
		browseCatalog(ctx, client, orchestrator, history, internal.KindAnime)
	case "4":
		runSearch(ctx, client, orchestrator, history)
	case "5":
		continueWatching(ctx, orchestrator, history)
	default:
		exitWith("Have a great day!", nil)
	}
}

func browseCatalog(ctx context.Context, client *internal.AddonClient, orchestrator *internal.Orchestrator, history *internal.HistoryStore, kind string) {
	records, err := client.FetchCatalog(ctx, kind, "top")
	if err != nil {
		exitWith("Failed to fetch catalog", err)
	}
	if len(records) == 0 {
		exitWith("Catalog came back empty", nil)
	}

	options := make(map[string]string)
	for i, rec := range records {
		label := rec.Name
		if rec.Year != "" {
			label = fmt.Sprintf("%s (%s)", rec.Name, rec.Year)
		}
		options[strconv.Itoa(i)] = label
	}

	selected, err := internal.DynamicSelect(options)
	if err != nil {
		exitWith("Error showing catalog menu", err)
	}
	if selected.Key == "-1" {
		exitWith("No selection made", nil)
	}

	index, _ := strconv.Atoi(selected.Key)
	rec := records[index]
	pickAndPlay(ctx, client, orchestrator, history, rec.Id, rec.Name, rec.Kind)
}

func runSearch(ctx context.Context, client *internal.AddonClient, orchestrator *internal.Orchestrator, history *internal.HistoryStore) {
	var query string
	config := internal.GetGlobalConfig()
	if config != nil && config.RofiSelection {
		var err error
		query, err = internal.GetUserInputFromRofi("Search for movies, series or anime")
		if err != nil {
			exitWith("Failed to read search query", err)
		}
	} else {
		reader := bufio.NewReader(os.Stdin)
		fmt.Print("Enter search query: ")
		input, _ := reader.ReadString('\n')
		query = strings.TrimSpace(input)
	}

	results, err := client.Search(ctx, query)
	if err != nil {
		exitWith("Search failed", err)
	}
	if len(results) == 0 {
		exitWith("No results found", nil)
	}

	options := make(map[string]string)
	for i, result := range results {
		label := result.Name
		if result.Year != "" {
			label = fmt.Sprintf("%s (%s)", result.Name, result.Year)
		}
		options[strconv.Itoa(i)] = fmt.Sprintf("[%s] %s", result.Kind, label)
	}

	selected, err := internal.DynamicSelect(options)
	if err != nil {
		exitWith("Error showing search results", err)
	}
	if selected.Key == "-1" {
		exitWith("No selection made", nil)
	}

	index, _ := strconv.Atoi(selected.Key)
	result := results[index]
	pickAndPlay(ctx, client, orchestrator, history, result.Id, result.Name, result.Kind)
}

// pickAndPlay resolves streams for a title, lets the user choose one, and
// hands it to the playback orchestrator.
func pickAndPlay(ctx context.Context, client *internal.AddonClient, orchestrator *internal.Orchestrator, history *internal.HistoryStore, contentID, title, kind string) {
	candidates, err := client.ResolveStreams(ctx, contentID)
	if err != nil {
		exitWith("Failed to fetch streams", err)
	}

	options := make(map[string]string)
	for i, cand := range candidates {
		label := streamLabel(&cand)
		seeders := 0
		if cand.Seeders != nil {
			seeders = *cand.Seeders
		}
		options[strconv.Itoa(i)] = fmt.Sprintf("%s|%d", label, seeders)
	}

	selected, err := internal.DynamicSelect(options)
	if err != nil {
		exitWith("Error showing stream menu", err)
	}
	if selected.Key == "-1" {
		exitWith("No selection made", nil)
	}

	index, _ := strconv.Atoi(selected.Key)
	cand := candidates[index]
	streamURL := cand.URL

	// Season packs carry multiple episodes in one torrent; offer an episode
	// picker before the downloader starts.
	if kind != internal.KindMovie && strings.HasPrefix(streamURL, "magnet:") {
		if picked, ok := pickEpisode(ctx, streamURL); ok {
			streamURL = picked
		}
	}

	startPlayback(ctx, orchestrator, history, streamURL, title)
}

// pickEpisode enumerates the torrent's video files and rebuilds the magnet
// with the chosen file selected. Single-file torrents skip the menu.
func pickEpisode(ctx context.Context, magnetURI string) (string, bool) {
	entries, err := internal.ListTorrentVideos(ctx, magnetURI)
	if err != nil {
		internal.Debug("could not enumerate torrent files: %v", err)
		return "", false
	}
	if len(entries) <= 1 {
		return "", false
	}
	entries = internal.SortEpisodes(entries)

	options := make(map[string]string)
	for i, entry := range entries {
		options[strconv.Itoa(i)] = entry.Label()
	}

	selected, err := internal.DynamicSelect(options)
	if err != nil || selected.Key == "-1" {
		return "", false
	}

	index, _ := strconv.Atoi(selected.Key)
	infoHash, _, err := internal.ParseMagnet(magnetURI)
	if err != nil {
		return "", false
	}
	// BuildMagnet's index is one-based relative to the selection parameter.
	return internal.BuildMagnet(infoHash, entries[index].Index+1), true
}

func continueWatching(ctx context.Context, orchestrator *internal.Orchestrator, history *internal.HistoryStore) {
	entries := history.All()
	if len(entries) == 0 {
		exitWith("No shows in watch history", nil)
	}

	options := make(map[string]string)
	for i, entry := range entries {
		options[strconv.Itoa(i)] = entry.Title
	}

	selected, err := internal.DynamicSelect(options)
	if err != nil {
		exitWith("Error showing watch history", err)
	}
	if selected.Key == "-1" {
		exitWith("No selection made", nil)
	}

	index, _ := strconv.Atoi(selected.Key)
	entry := entries[index]
	internal.Info("Resuming %s", entry.Title)
	startPlayback(ctx, orchestrator, history, entry.StreamURL, entry.Title)
}

// playDirect handles a magnet URI or torrent page URL given on the command
// line.
func playDirect(ctx context.Context, orchestrator *internal.Orchestrator, history *internal.HistoryStore, arg string) {
	streamURL := arg
	if !strings.HasPrefix(arg, "magnet:") {
		magnet, err := internal.ScrapeMagnetURI(arg)
		if err != nil {
			exitWith("Failed to find a magnet link on that page", err)
		}
		streamURL = magnet
	}
	startPlayback(ctx, orchestrator, history, streamURL, "")
}

func startPlayback(ctx context.Context, orchestrator *internal.Orchestrator, history *internal.HistoryStore, streamURL, title string) {
	status, err := orchestrator.AcquireAndPlay(ctx, streamURL, title)
	if err != nil {
		exitWith("Playback failed", err)
	}
	fmt.Println(status)

	if title != "" {
		if err := history.Record(internal.WatchEntry{StreamURL: streamURL, Title: title}); err != nil {
			internal.Debug("failed to record watch history: %v", err)
		}
	}

	// The downloader keeps feeding the player until we exit.
	fmt.Println("Press Enter to stop streaming and quit.")
	bufio.NewReader(os.Stdin).ReadString('\n')
	exitWith("Have a great day!", nil)
}

// streamLabel avoids "|" because the menu encodes seeders behind one.
func streamLabel(cand *internal.StreamCandidate) string {
	title := strings.ReplaceAll(cand.Title, "\n", " ")
	meta := []string{}
	if cand.Quality != "" {
		meta = append(meta, cand.Quality)
	}
	if cand.Size != "" {
		meta = append(meta, cand.Size)
	}
	if len(meta) == 0 {
		return title
	}
	return fmt.Sprintf("[%s] %s", strings.Join(meta, ", "), title)
}
