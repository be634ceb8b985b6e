package configs

import (
	"embed"
)

// FS 內嵌的示範設定檔，可直接給 spec.LoadConfigFS 使用。
//
//go:embed *.yaml
var FS embed.FS
