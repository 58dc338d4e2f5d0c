//go:build darwin

package smc

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/ftahirops/macsense/native/iokit"
)

// Conn is an open AppleSMC user-client connection.
type Conn struct {
	mu    sync.Mutex
	conn  iokit.Connection
	infos map[string]keyInfo
}

// Open connects to the AppleSMC service.
func Open() (*Conn, error) {
	svc, err := iokit.FirstService("AppleSMC")
	if err != nil {
		return nil, err
	}
	defer svc.Release()
	conn, err := svc.Open(0)
	if err != nil {
		return nil, fmt.Errorf("open AppleSMC: %w", err)
	}
	return &Conn{conn: conn, infos: make(map[string]keyInfo)}, nil
}

// Close releases the connection. Calling it twice is harmless.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.Close()
	c.conn = 0
	return nil
}

func (c *Conn) call(in *keyData) (keyData, error) {
	var out keyData
	if c.conn == 0 {
		return out, fmt.Errorf("smc: connection closed")
	}
	err := c.conn.CallStruct(kernelIndexSMC,
		unsafe.Pointer(in), unsafe.Sizeof(*in),
		unsafe.Pointer(&out), unsafe.Sizeof(out))
	if err != nil {
		return out, err
	}
	if out.Result == resultKeyNotFound {
		return out, ErrKeyNotFound
	}
	if out.Result != 0 {
		return out, fmt.Errorf("smc: command %d result 0x%02x", in.Data8, out.Result)
	}
	return out, nil
}

func (c *Conn) info(key string) (keyInfo, error) {
	if ki, ok := c.infos[key]; ok {
		return ki, nil
	}
	out, err := c.call(&keyData{Key: encodeKey(key), Data8: cmdReadKeyInfo})
	if err != nil {
		return keyInfo{}, fmt.Errorf("smc key info %s: %w", key, err)
	}
	c.infos[key] = out.KeyInfo
	return out.KeyInfo, nil
}

// KeyCount reads the #KEY key.
func (c *Conn) KeyCount() (int, error) {
	v, err := c.Read("#KEY")
	if err != nil {
		return 0, err
	}
	n, err := Decode(v)
	return int(n), err
}

// KeyAt returns the key name at index.
func (c *Conn) KeyAt(index int) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out, err := c.call(&keyData{Data8: cmdReadIndex, Data32: uint32(index)})
	if err != nil {
		return "", fmt.Errorf("smc key at %d: %w", index, err)
	}
	return decodeKey(out.Key), nil
}

// Read returns the raw value of key.
func (c *Conn) Read(key string) (Value, error) {
	if err := checkKey(key); err != nil {
		return Value{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	ki, err := c.info(key)
	if err != nil {
		return Value{}, err
	}
	in := keyData{Key: encodeKey(key), Data8: cmdReadBytes}
	in.KeyInfo.DataSize = ki.DataSize
	out, err := c.call(&in)
	if err != nil {
		return Value{}, fmt.Errorf("smc read %s: %w", key, err)
	}
	size := int(ki.DataSize)
	if size > len(out.Bytes) {
		size = len(out.Bytes)
	}
	b := make([]byte, size)
	copy(b, out.Bytes[:size])
	return Value{Key: key, DataType: decodeKey(ki.DataType), Bytes: b}, nil
}
