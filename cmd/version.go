package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Build metadata, stamped at build time:
//
//	go build -ldflags "-X github.com/26sneakysnake/Career-Compass/cmd.version=v1.2.0 \
//		-X github.com/26sneakysnake/Career-Compass/cmd.commit=$(git rev-parse --short HEAD) \
//		-X github.com/26sneakysnake/Career-Compass/cmd.buildDate=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	version   = "unknown"
	commit    = ""
	buildDate = ""
)

type buildInfo struct {
	Version string
	Commit  string
	Date    string
}

// currentBuild falls back to the module version and VCS revision recorded by
// the toolchain when the binary was built without -ldflags.
func currentBuild() buildInfo {
	info := buildInfo{Version: version, Commit: commit, Date: buildDate}

	recorded, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}

	if info.Version == "unknown" && recorded.Main.Version != "" && recorded.Main.Version != "(devel)" {
		info.Version = recorded.Main.Version
	}
	for _, setting := range recorded.Settings {
		switch setting.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = setting.Value
			}
		case "vcs.time":
			if info.Date == "" {
				info.Date = setting.Value
			}
		}
	}

	return info
}

func (b buildInfo) String() string {
	s := fmt.Sprintf("%s version: %s", app, b.Version)
	if b.Commit != "" {
		s += fmt.Sprintf(" (commit %s", b.Commit)
		if b.Date != "" {
			s += fmt.Sprintf(", built %s", b.Date)
		}
		s += ")"
	}
	return s
}

func (b buildInfo) Fields() []zap.Field {
	return []zap.Field{
		zap.String("version", b.Version),
		zap.String("commit", b.Commit),
		zap.String("build_date", b.Date),
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and build metadata",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), currentBuild())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
