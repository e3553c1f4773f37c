// Package version holds build metadata, set with -ldflags at release time.
// Package version 保存构建信息，发布时通过 -ldflags 设置。
package version

// Version is the release version, "dev" for local builds.
// Version 是发布版本号，本地构建为 "dev"。
var Version = "dev"

// Commit is the git revision the binary was built from.
var Commit = "unknown"
