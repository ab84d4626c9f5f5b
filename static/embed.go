package staticfiles

import (
	"embed"
	"io/fs"
)

//go:embed index.html js/*
var embedded embed.FS

func EmbeddedFS() fs.FS {
	return embedded
}

func IndexHTML() ([]byte, error) {
	return fs.ReadFile(embedded, "index.html")
}
