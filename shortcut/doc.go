// Package shortcut edits shortcut files: the list of non-store programs
// a game launcher shows alongside its own library.
//
// A shortcut file decodes to a root collection whose "shortcuts" entry is
// an array of entries such as
//
//	appname             "My Game"
//	exe                 "\"C:\\Games\\game.exe\""
//	StartDir            "\"C:\\Games\\\""
//	icon                ""
//	ShortcutPath        ""
//	IsHidden            0
//	AllowDesktopConfig  1
//	OpenVR              0
//	tags                {0: "favorite"}
//
// File adds and removes entries while keeping the list an array, and
// Save can keep a timestamped (and optionally zstd compressed) copy of
// the file being replaced.
//
// Game ids identify a shortcut to the launcher without an app id: see
// ShortcutID and ModID.
package shortcut
