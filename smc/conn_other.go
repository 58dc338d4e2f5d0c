//go:build !darwin

package smc

import "github.com/ftahirops/macsense/util"

// Conn is unavailable off darwin.
type Conn struct{}

// Open always fails off darwin.
func Open() (*Conn, error) { return nil, util.ErrUnsupported }

func (c *Conn) Close() error               { return nil }
func (c *Conn) KeyCount() (int, error)     { return 0, util.ErrUnsupported }
func (c *Conn) KeyAt(int) (string, error)  { return "", util.ErrUnsupported }
func (c *Conn) Read(string) (Value, error) { return Value{}, util.ErrUnsupported }
