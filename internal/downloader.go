package internal

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

type downloaderState int

const (
	stateIdle downloaderState = iota
	stateStarting
	stateRunning
	stateStopping
)

// Downloader owns at most one external peerflix process. Start tears down any
// running session first, so there is never more than one downloader alive.
type Downloader struct {
	mu       sync.Mutex
	state    downloaderState
	process  *os.Process
	infoHash string
	outDir   string

	// Candidates is the probe list of peerflix executables, tried in order.
	Candidates []string
	// BaseDir is where peerflix drops downloads, keyed by info-hash.
	BaseDir string
	Port    int
}

func NewDownloader(cfg *ProgramConfig) *Downloader {
	return &Downloader{
		Candidates: downloaderCandidates(),
		BaseDir:    os.ExpandEnv(cfg.DownloadDir),
		Port:       cfg.StreamPort,
	}
}

func downloaderCandidates() []string {
	if runtime.GOOS == "windows" {
		candidates := []string{"peerflix", "peerflix.cmd"}
		if appData := os.Getenv("APPDATA"); appData != "" {
			candidates = append(candidates, filepath.Join(appData, "npm", "peerflix.cmd"))
		}
		return candidates
	}
	return []string{"peerflix", "/usr/local/bin/peerflix", "/usr/bin/peerflix"}
}

// Start spawns peerflix for the magnet URI and returns the directory the
// download will appear in. Any session still running is stopped first.
func (d *Downloader) Start(magnetURI string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == stateRunning {
		d.stopLocked()
	}
	d.state = stateStarting

	infoHash, fileIndex, err := ParseMagnet(magnetURI)
	if err != nil {
		d.state = stateIdle
		return "", err
	}

	command, err := d.probe()
	if err != nil {
		d.state = stateIdle
		return "", err
	}
	Debug("peerflix found with command: %s", command)

	args := []string{
		magnetURI,
		"--port", fmt.Sprintf("%d", d.Port),
		"--not-on-top", // don't prioritize latest pieces, keep the download sequential-friendly
		"--quiet",
	}
	if fileIndex >= 0 {
		args = append(args, fmt.Sprintf("--index=%d", fileIndex))
	}

	cmd := exec.Command(command, args...)
	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		d.state = stateIdle
		return "", fmt.Errorf("failed to open %s: %w", os.DevNull, err)
	}
	defer devNull.Close()
	cmd.Stdout = devNull
	cmd.Stderr = devNull

	if err := cmd.Start(); err != nil {
		d.state = stateIdle
		return "", fmt.Errorf("failed to start peerflix: %w", err)
	}

	d.process = cmd.Process
	d.infoHash = infoHash
	d.outDir = filepath.Join(d.BaseDir, strings.ToLower(infoHash))
	d.state = stateRunning
	Info("peerflix started (PID: %d), downloading to %s", cmd.Process.Pid, d.outDir)

	return d.outDir, nil
}

// probe walks the candidate executables until one answers a --help
// capability check.
func (d *Downloader) probe() (string, error) {
	for _, candidate := range d.Candidates {
		Debug("trying downloader command: %s", candidate)
		if err := exec.Command(candidate, "--help").Run(); err == nil {
			return candidate, nil
		}
	}
	return "", ErrDownloaderNotFound
}

// Stop terminates the current downloader process and waits for it to exit.
// Calling it with nothing running is a no-op.
func (d *Downloader) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

func (d *Downloader) stopLocked() {
	if d.process == nil {
		d.state = stateIdle
		return
	}
	d.state = stateStopping
	Debug("terminating peerflix process (PID: %d)", d.process.Pid)
	if err := d.process.Kill(); err != nil {
		Debug("failed to kill peerflix: %v", err)
	}
	d.process.Wait()
	d.process = nil
	d.infoHash = ""
	d.outDir = ""
	d.state = stateIdle
}

func (d *Downloader) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state == stateRunning
}

// Sweep force-kills any peerflix left over by name, independent of our own
// process handle. Covers a leaked process from a previous run.
func (d *Downloader) Sweep() {
	d.Stop()
	if runtime.GOOS == "windows" {
		exec.Command("taskkill", "/F", "/IM", "node.exe", "/FI", "WINDOWTITLE eq peerflix*").Run()
		return
	}
	// Errors ignored, peerflix might simply not be running.
	exec.Command("pkill", "-9", "peerflix").Run()
}
