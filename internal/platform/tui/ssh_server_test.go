package tui

import (
	"errors"
	"testing"

	"github.com/vovakirdan/stackbot/internal/config"
)

func TestSessionProfile(t *testing.T) {
	s := &SSHServer{config: DefaultSSHServerConfig()}

	tests := []struct {
		name string
		args []string
		want config.Difficulty
	}{
		{"no command", nil, config.DifficultyMedium},
		{"easy", []string{"easy"}, config.DifficultyEasy},
		{"case insensitive", []string{"HARD"}, config.DifficultyHard},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := s.sessionProfile(tc.args)
			if err != nil {
				t.Fatalf("sessionProfile: %v", err)
			}
			if p.Difficulty != tc.want {
				t.Errorf("Difficulty = %s, want %s", p.Difficulty, tc.want)
			}
		})
	}

	if _, err := s.sessionProfile([]string{"insane"}); !errors.Is(err, config.ErrUnknownDifficulty) {
		t.Errorf("err = %v, want ErrUnknownDifficulty", err)
	}
}
