//go:build !darwin

package collector

import "github.com/ftahirops/macsense/model"

func readGPUs() ([]model.GPUInfo, error) { return nil, nil }
