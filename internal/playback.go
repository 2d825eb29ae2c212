package internal

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// PlayerCommand is one external player and its argument convention. Players
// disagree about flag syntax (mpv wants --flag=value, vlc wants --flag value)
// so each entry builds its own argv.
type PlayerCommand struct {
	Name string
	Args func(target, title string) []string
}

// DefaultPlayers returns the player fallback chain for this platform, in
// preference order.
func DefaultPlayers() []PlayerCommand {
	players := []PlayerCommand{
		{Name: "mpv", Args: func(target, title string) []string {
			if title != "" {
				return []string{"--title=" + title, target}
			}
			return []string{target}
		}},
		{Name: "vlc", Args: func(target, title string) []string {
			if title != "" {
				return []string{"--meta-title", title, target}
			}
			return []string{target}
		}},
	}
	switch runtime.GOOS {
	case "darwin":
		players = append(players, PlayerCommand{Name: "open", Args: func(target, _ string) []string {
			return []string{target}
		}})
	default:
		players = append(players, PlayerCommand{Name: "xdg-open", Args: func(target, _ string) []string {
			return []string{target}
		}})
	}
	return players
}

// playersByPriority moves the configured player names to the front of the
// default chain. Unknown names are ignored; everything unmentioned keeps its
// place behind them, so the system opener stays the last resort.
func playersByPriority(priority string) []PlayerCommand {
	players := DefaultPlayers()
	if priority == "" {
		return players
	}

	ordered := make([]PlayerCommand, 0, len(players))
	for _, name := range strings.Split(priority, ",") {
		name = strings.TrimSpace(name)
		for i, p := range players {
			if p.Name == name {
				ordered = append(ordered, p)
				players = append(players[:i], players[i+1:]...)
				break
			}
		}
	}
	return append(ordered, players...)
}

// Orchestrator turns a chosen stream into something playing in an external
// player: direct URLs go straight to the player, magnets go through the
// downloader plus a bounded filesystem poll for a ready media file.
type Orchestrator struct {
	Downloader      *Downloader
	Players         []PlayerCommand
	PollInterval    time.Duration
	PollMaxAttempts int
	MinFileSize     int64
}

func NewOrchestrator(cfg *ProgramConfig, downloader *Downloader) *Orchestrator {
	return &Orchestrator{
		Downloader:      downloader,
		Players:         playersByPriority(cfg.PlayerPriority),
		PollInterval:    time.Duration(cfg.PollIntervalSeconds) * time.Second,
		PollMaxAttempts: cfg.PollMaxAttempts,
		MinFileSize:     int64(cfg.MinFileSizeMB) * 1024 * 1024,
	}
}

// AcquireAndPlay starts playback for the stream URL and returns a status
// message. Cancelling the context stops the downloader; a player already
// launched is not tracked.
func (o *Orchestrator) AcquireAndPlay(ctx context.Context, streamURL, title string) (string, error) {
	if strings.HasPrefix(streamURL, "http://") || strings.HasPrefix(streamURL, "https://") {
		return o.launchPlayer(streamURL, title)
	}

	outDir, err := o.Downloader.Start(streamURL)
	if err != nil {
		return "", err
	}

	mediaPath, err := o.waitForMedia(ctx, outDir)
	if err != nil {
		o.Downloader.Stop()
		return "", err
	}

	return o.launchPlayer(mediaPath, title)
}

// waitForMedia polls the output directory until a video file reaches the
// readiness threshold. Directory or file never appearing is fatal; the size
// threshold is soft and playback is attempted with whatever was found.
func (o *Orchestrator) waitForMedia(ctx context.Context, outDir string) (string, error) {
	ok, err := o.poll(ctx, func() bool {
		info, statErr := os.Stat(outDir)
		return statErr == nil && info.IsDir()
	})
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: output directory %s never appeared", ErrAcquisitionTimeout, outDir)
	}

	var mediaPath string
	ok, err = o.poll(ctx, func() bool {
		path, _, findErr := FindLargestVideo(outDir)
		if findErr != nil {
			return false
		}
		mediaPath = path
		return true
	})
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: no video file appeared under %s", ErrAcquisitionTimeout, outDir)
	}
	Debug("found video file: %s", mediaPath)

	ok, err = o.poll(ctx, func() bool {
		// The largest file can change as more of the torrent arrives.
		path, size, findErr := FindLargestVideo(outDir)
		if findErr != nil {
			return false
		}
		mediaPath = path
		return size >= o.MinFileSize
	})
	if err != nil {
		return "", err
	}
	if !ok {
		Info("file still below %s after polling, attempting playback anyway", FormatSize(o.MinFileSize))
	}

	return mediaPath, nil
}

// poll runs check up to PollMaxAttempts times, PollInterval apart, until it
// returns true. The context interrupts the wait immediately.
func (o *Orchestrator) poll(ctx context.Context, check func() bool) (bool, error) {
	for attempt := 0; attempt < o.PollMaxAttempts; attempt++ {
		if check() {
			return true, nil
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(o.PollInterval):
		}
	}
	return check(), nil
}

// launchPlayer tries each player in order and keeps the first one that
// spawns. The player is not awaited.
func (o *Orchestrator) launchPlayer(target, title string) (string, error) {
	for _, player := range o.Players {
		cmd := exec.Command(player.Name, player.Args(target, title)...)
		if err := cmd.Start(); err != nil {
			Debug("player %s failed to start: %v", player.Name, err)
			continue
		}
		Info("launched %s (PID: %d)", player.Name, cmd.Process.Pid)
		go cmd.Wait()
		return fmt.Sprintf("Launched %s with stream", player.Name), nil
	}
	return "", ErrNoPlayerFound
}
