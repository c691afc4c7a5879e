// board/platform/factories_none.go
//go:build tinygo && !esp32s2 && !rp2040 && !rp2350

package platform

// On other TinyGo targets, default to "not configured". The registry then
// carries index-only pins and buses.
func DefaultPinFactory() PinFactory { return nil }
func DefaultBusFactory() BusFactory { return nil }
