package discovery

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/enbility/zeroconf/v3"
)

// Service constants.
const (
	// ServiceTypeSCPIRaw is the mDNS service type for raw-socket SCPI.
	ServiceTypeSCPIRaw = "_scpi-raw._tcp"

	// Domain is the mDNS domain.
	Domain = "local."

	// DefaultTTL is the default DNS record TTL.
	DefaultTTL = 120 * time.Second
)

// InstrumentInfo describes the advertised instrument.
type InstrumentInfo struct {
	// Manufacturer, Model, Serial and Firmware mirror the *IDN? fields.
	Manufacturer string
	Model        string
	Serial       string
	Firmware     string

	// Port is the raw-socket listen port.
	Port int
}

// InstanceName derives the mDNS instance name: "<Model>-<Serial>".
func (i *InstrumentInfo) InstanceName() string {
	return fmt.Sprintf("%s-%s", i.Model, i.Serial)
}

// TXTRecords encodes the identity fields as mDNS TXT records.
func (i *InstrumentInfo) TXTRecords() []string {
	return []string{
		"Manufacturer=" + i.Manufacturer,
		"Model=" + i.Model,
		"SerialNumber=" + i.Serial,
		"FirmwareVersion=" + i.Firmware,
	}
}

// AdvertiserConfig configures advertiser behavior.
type AdvertiserConfig struct {
	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string

	// TTL is the DNS record TTL. Default: DefaultTTL.
	TTL time.Duration
}

// DefaultAdvertiserConfig returns the default advertiser configuration.
func DefaultAdvertiserConfig() AdvertiserConfig {
	return AdvertiserConfig{TTL: DefaultTTL}
}

// Advertiser announces an instrument over mDNS using zeroconf.
type Advertiser struct {
	config AdvertiserConfig

	mu     sync.Mutex
	server *zeroconf.Server
}

// NewAdvertiser creates a new mDNS advertiser.
func NewAdvertiser(config AdvertiserConfig) *Advertiser {
	return &Advertiser{config: config}
}

// getInterfaces returns the network interfaces to use for advertising.
// Returns nil to use all interfaces.
func (a *Advertiser) getInterfaces() []net.Interface {
	if a.config.Interface == "" {
		return nil
	}
	iface, err := net.InterfaceByName(a.config.Interface)
	if err != nil {
		return nil
	}
	return []net.Interface{*iface}
}

// Advertise starts announcing the instrument.
// A previous announcement for this advertiser is replaced.
func (a *Advertiser) Advertise(info *InstrumentInfo) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}

	var opts []zeroconf.ServerOption
	if a.config.TTL > 0 {
		opts = append(opts, zeroconf.TTL(uint32(a.config.TTL.Seconds())))
	}

	server, err := zeroconf.Register(
		info.InstanceName(),
		ServiceTypeSCPIRaw,
		Domain,
		info.Port,
		info.TXTRecords(),
		a.getInterfaces(),
		opts...,
	)
	if err != nil {
		return fmt.Errorf("failed to register mDNS service: %w", err)
	}
	a.server = server
	return nil
}

// Stop withdraws the announcement.
func (a *Advertiser) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}
}
