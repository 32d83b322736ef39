// Package version reports the build version, set at link time with
// -ldflags "-X github.com/cbodonnell/liarsdice/pkg/version.version=v1.2.3".
package version

var version = "dev"

func Get() string {
	return version
}
