package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestUserAgent(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "v1.2.3"
	if got := UserAgent(); got != "excalidocker/v1.2.3" {
		t.Errorf("UserAgent() = %q", got)
	}
}

func TestTemplate(t *testing.T) {
	if !strings.Contains(Template(), "{{.Name}} version "+Version) {
		t.Errorf("Template() = %q, missing version line", Template())
	}
	if !strings.Contains(String(), "commit: "+Commit) {
		t.Errorf("String() = %q, missing commit", String())
	}
}

func TestFromBuildInfo(t *testing.T) {
	v, c, d := Version, Commit, Date
	defer func() { Version, Commit, Date = v, c, d }()

	info := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2024-05-01T12:00:00Z"},
		},
	}

	Version, Commit, Date = "dev", "none", "unknown"
	fromBuildInfo(info)
	if Version != "v0.4.0" || Commit != "abc123" || Date != "2024-05-01T12:00:00Z" {
		t.Errorf("fromBuildInfo() = %s %s %s", Version, Commit, Date)
	}

	Version, Commit, Date = "v1.0.0", "deadbeef", "today"
	fromBuildInfo(info)
	if Version != "v1.0.0" || Commit != "deadbeef" || Date != "today" {
		t.Errorf("ldflags values should win, got %s %s %s", Version, Commit, Date)
	}

	Version = "dev"
	fromBuildInfo(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	if Version != "dev" {
		t.Errorf("(devel) should keep dev, got %s", Version)
	}
}
