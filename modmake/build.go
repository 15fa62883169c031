package main

import (
	. "github.com/saylorsolutions/modmake"
)

const (
	qmcdecodeVersion = "0.1.0"
)

func main() {
	b := NewBuild()
	b.Generate().DependsOnRunner("tidy", "", Go().ModTidy())

	qmcdecode := NewAppBuild("qmcdecode", "cmd/qmcdecode", qmcdecodeVersion)
	qmcdecode.Build(func(gb *GoBuild) {
		gb.
			StripDebugSymbols().
			SetVariable("main", "version", qmcdecodeVersion).
			CgoEnabled(false)
	})
	for _, variant := range [][2]string{
		{"windows", "amd64"},
		{"linux", "amd64"},
		{"linux", "arm64"},
		{"darwin", "amd64"},
		{"darwin", "arm64"},
	} {
		qmcdecode.Variant(variant[0], variant[1])
	}
	b.ImportApp(qmcdecode)

	b.Execute()
}
