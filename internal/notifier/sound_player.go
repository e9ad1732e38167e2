package notifier

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

var soundExtensions = []string{".mp3", ".wav", ".ogg"}

// playerCommand describes how one audio CLI plays a file.
type playerCommand struct {
	name string
	args func(file string) []string
}

func playerCommands(goos string) []playerCommand {
	if goos == "darwin" {
		return []playerCommand{{name: "afplay", args: func(f string) []string { return []string{f} }}}
	}
	return []playerCommand{
		{name: "paplay", args: func(f string) []string { return []string{f} }},
		{name: "ffplay", args: func(f string) []string { return []string{"-nodisp", "-autoexit", "-loglevel", "quiet", f} }},
		{name: "aplay", args: func(f string) []string { return []string{"-q", f} }},
	}
}

// CommandSoundPlayer plays <dir>/<sound id>.{mp3,wav,ogg} with the first audio
// player found on the PATH.
type CommandSoundPlayer struct {
	dir      string
	goos     string
	run      CommandRunner
	lookPath LookPathFunc
	stat     func(string) (os.FileInfo, error)
}

func NewCommandSoundPlayer(dir string) *CommandSoundPlayer {
	return &CommandSoundPlayer{
		dir:      dir,
		goos:     runtime.GOOS,
		run:      execCommand,
		lookPath: exec.LookPath,
		stat:     os.Stat,
	}
}

// PlaySound implements models.SoundPlayer.
func (p *CommandSoundPlayer) PlaySound(ctx context.Context, soundID string) error {
	file, err := p.resolve(soundID)
	if err != nil {
		return err
	}

	for _, pc := range playerCommands(p.goos) {
		if _, err := p.lookPath(pc.name); err != nil {
			continue
		}
		return p.run(ctx, pc.name, pc.args(file)...)
	}
	return fmt.Errorf("no audio player found to play %s", soundID)
}

func (p *CommandSoundPlayer) resolve(soundID string) (string, error) {
	for _, ext := range soundExtensions {
		candidate := filepath.Join(p.dir, soundID+ext)
		if info, err := p.stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("sound %q not found in %s", soundID, p.dir)
}

// SilentPlayer discards sounds, for backends without audio.
type SilentPlayer struct{}

func (SilentPlayer) PlaySound(context.Context, string) error { return nil }
