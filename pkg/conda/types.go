package conda

import "go.trai.ch/zerr"

type Platform string

const (
	PlatformNoArch           Platform = "noarch"
	PlatformLinux32          Platform = "linux-32"
	PlatformLinux64          Platform = "linux-64"
	PlatformLinuxAarch64     Platform = "linux-aarch64"
	PlatformLinuxArmV6l      Platform = "linux-armv6l"
	PlatformLinuxArmV7l      Platform = "linux-armv7l"
	PlatformLinuxPPC64le     Platform = "linux-ppc64le"
	PlatformLinuxPPC64       Platform = "linux-ppc64"
	PlatformLinuxS390x       Platform = "linux-s390x"
	PlatformLinuxRiscv64     Platform = "linux-riscv64"
	PlatformOsx64            Platform = "osx-64"
	PlatformOsxArm64         Platform = "osx-arm64"
	PlatformWin32            Platform = "win-32"
	PlatformWin64            Platform = "win-64"
	PlatformWinArm64         Platform = "win-arm64"
	PlatformEmscriptenWasm32 Platform = "emscripten-wasm32"
	PlatformWasiWasm32       Platform = "wasi-wasm32"
	PlatformZos              Platform = "zos-z"
)

var knownPlatforms = map[Platform]struct{}{
	PlatformNoArch:           {},
	PlatformLinux32:          {},
	PlatformLinux64:          {},
	PlatformLinuxAarch64:     {},
	PlatformLinuxArmV6l:      {},
	PlatformLinuxArmV7l:      {},
	PlatformLinuxPPC64le:     {},
	PlatformLinuxPPC64:       {},
	PlatformLinuxS390x:       {},
	PlatformLinuxRiscv64:     {},
	PlatformOsx64:            {},
	PlatformOsxArm64:         {},
	PlatformWin32:            {},
	PlatformWin64:            {},
	PlatformWinArm64:         {},
	PlatformEmscriptenWasm32: {},
	PlatformWasiWasm32:       {},
	PlatformZos:              {},
}

const (
	ExtConda  = ".conda"
	ExtTarBz2 = ".tar.bz2"
)

// ErrUnknownPlatform is returned when a package location names a
// subdirectory that is not a conda platform.
var ErrUnknownPlatform = zerr.New("unknown platform")

// Location is a conda package location broken into its parts.
type Location struct {
	Platform Platform
	Name     string
	Version  string
	Build    string
	Filename string
}
