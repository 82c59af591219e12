// Package assets embeds the level files shared by the client and the server.
package assets

import (
	"embed"
	"io/fs"
)

// LevelsDir is the directory inside FS holding the .tmx levels.
const LevelsDir = "levels"

//go:embed all:levels
var levelFS embed.FS

// FS returns the embedded asset tree.
func FS() fs.FS {
	return levelFS
}
