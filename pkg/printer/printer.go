package printer

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"os"
	"sync"
	"time"
)

// Printer sends raw ESC/POS data to a thermal printer.
type Printer interface {
	Print(ctx context.Context, data []byte) error
	// IsConnected reports whether the device is reachable right now.
	IsConnected() bool
}

// --- USB printer (writes to a device file such as /dev/usb/lp0) ---

type usbPrinter struct {
	path string
}

// NewUSBPrinter creates a printer that writes to a USB device file.
func NewUSBPrinter(devicePath string) Printer {
	return &usbPrinter{path: devicePath}
}

func (p *usbPrinter) Print(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: failed to open USB device %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: failed to write to USB device %s: %w", p.path, err)
	}
	return nil
}

func (p *usbPrinter) IsConnected() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

// --- Network printer (raw TCP, usually port 9100) ---

type networkPrinter struct {
	address string
	dialer  net.Dialer
}

// NewNetworkPrinter creates a printer reachable over TCP, e.g. "192.168.0.50:9100".
func NewNetworkPrinter(address string) Printer {
	return &networkPrinter{
		address: address,
		dialer:  net.Dialer{Timeout: 5 * time.Second},
	}
}

func (p *networkPrinter) Print(ctx context.Context, data []byte) error {
	conn, err := p.dialer.DialContext(ctx, "tcp", p.address)
	if err != nil {
		return fmt.Errorf("printer: failed to connect to %s: %w", p.address, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(10 * time.Second)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetWriteDeadline(deadline)

	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: failed to write to %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.address, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// --- Null printer (no hardware configured) ---

type nullPrinter struct{}

// NewNullPrinter creates a printer that discards every job.
func NewNullPrinter() Printer {
	return nullPrinter{}
}

func (nullPrinter) Print(context.Context, []byte) error { return nil }
func (nullPrinter) IsConnected() bool                   { return false }

// --- Buffer printer (keeps jobs in memory) ---

// BufferPrinter stores every job it receives; used for previews and tests.
type BufferPrinter struct {
	mu   sync.Mutex
	jobs [][]byte
}

func NewBufferPrinter() *BufferPrinter {
	return &BufferPrinter{}
}

func (p *BufferPrinter) Print(_ context.Context, data []byte) error {
	p.mu.Lock()
	p.jobs = append(p.jobs, bytes.Clone(data))
	p.mu.Unlock()
	return nil
}

func (p *BufferPrinter) IsConnected() bool { return true }

// Jobs returns a copy of the printed jobs.
func (p *BufferPrinter) Jobs() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([][]byte(nil), p.jobs...)
}

// NewFromConfig creates the appropriate Printer based on type:
// "usb" (needs usbPath), "network" (needs address), "buffer", or "none".
func NewFromConfig(printerType, usbPath, address string) (Printer, error) {
	switch printerType {
	case "usb":
		if usbPath == "" {
			return nil, fmt.Errorf("printer: USB path is required for USB printer type")
		}
		return NewUSBPrinter(usbPath), nil
	case "network":
		if address == "" {
			return nil, fmt.Errorf("printer: address is required for network printer type")
		}
		return NewNetworkPrinter(address), nil
	case "buffer":
		return NewBufferPrinter(), nil
	case "none", "":
		return NewNullPrinter(), nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network, buffer or none)", printerType)
	}
}
