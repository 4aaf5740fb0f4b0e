// Package content locates and loads external game content.
//
// # Overview
//
// Game content is a folder of .pak archives (for example
// ".../Dungeons/Content/Paks"). The editor works without it, but item,
// level and enchantment pickers are only populated once it is loaded.
//
// # Components
//
//   - loader.go: FSLoader, the Loader used by the startup sequence
//   - locations.go: Locations, which resolves the remembered or default folder
//   - types.go: Content, Pak and Manifest
//
// # Loading
//
// FSLoader.Init prepares the reader and validates the optional pak key
// (64 hex characters). FSLoader.Load then:
//
//  1. checks the path is a folder
//  2. collects every *.pak file, rejecting empty archives
//  3. reads content.yaml when present
//
// A folder without archives is an error wrapping ErrNoPaks. Errors keep
// their underlying message because it is shown to the user verbatim.
//
// # Manifest
//
//	name: Minecraft Dungeons
//	version: "1.17"
//	items: [Sword, Bow]
//	levels: [Creeper Woods]
//	enchantments: [Sharpness]
package content
