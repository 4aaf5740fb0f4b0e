// Package config loads the dungeonedit runtime configuration.
//
// # Overview
//
// Configuration is read once at startup and passed by value into the
// components that need it. Nothing in the application reads global debug
// switches or settings directly; the lifecycle controller, logger and
// telemetry sink all receive a Config.
//
// # Configuration Discovery
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/dungeonedit/config.toml
//  3. If the file doesn't exist, use Default()
//  4. Missing or blank fields keep their default value
//
// # TOML Format
//
//	app_name = "DungeonEdit"
//	debug = false
//	log_level = "info"
//	log_file = "~/.local/share/dungeonedit/dungeonedit.log"
//	prefs_path = "~/.config/dungeonedit/prefs.toml"
//	telemetry_enabled = true
//	telemetry_file = "~/.local/share/dungeonedit/events.jsonl"
//	content_search_paths = [
//	  "~/.steam/steam/steamapps/common/MinecraftDungeons/Dungeons/Content/Paks",
//	]
//
// content_search_paths lists install locations probed for game content when
// no location has been remembered yet.
//
// # Path Expansion
//
// Every path field accepts "~" and relative paths; both are converted to
// absolute paths at load time.
//
// # Error Handling
//
// Load returns errors for unreadable files and invalid TOML. A missing file
// is not an error.
package config
