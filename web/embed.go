// Package web embeds the browser front end for the hitsound copier.
package web

import "embed"

// Assets holds the static files under dist/, served by mt serve.
//
//go:embed all:dist
var Assets embed.FS
