package ui

import (
	"os/exec"
	"strings"
)

const fallbackLogo = `    ____                                           ______    ___ __
   / __ \__  ______  ____ ____  ____  ____  _____/ ____/___/ (_) /_
  / / / / / / / __ \/ __ '/ _ \/ __ \/ __ \/ ___/ __/ / __  / / __/
 / /_/ / /_/ / / / / /_/ /  __/ /_/ / / / (__  ) /___/ /_/ / / /_
/_____/\__,_/_/ /_/\__, /\___/\____/_/ /_/____/_____/\__,_/_/\__/
                  /____/`

// createLogo generates the splash logo using figlet, falling back to a
// built-in rendering.
func createLogo() string {
	cmd := exec.Command("figlet", "-f", "slant", "DungeonEdit")
	output, err := cmd.Output()
	if err == nil && len(strings.TrimSpace(string(output))) > 0 {
		return trimBlankLines(string(output))
	}
	return fallbackLogo
}

func trimBlankLines(text string) string {
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, strings.TrimRight(line, " "))
	}
	return strings.Join(out, "\n")
}
