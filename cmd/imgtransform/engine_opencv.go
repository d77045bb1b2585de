//go:build opencv

package main

import (
	_ "imgtransform/internal/opencv"
)
