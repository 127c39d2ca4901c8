// Copyright 2026 The geomidx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command rtree-build bulk-loads an R-tree from a polygon dataset and
// writes its persisted text form.
//
// Usage:
//
//	rtree-build [-o rtree_file] coords_file offsets_file
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/geomidx/geomidx"
	"github.com/geomidx/geomidx/rtree"
	"github.com/geomidx/geomidx/zorder"
	"go.uber.org/zap"
)

func main() {
	out := flag.String("o", "Rtree.txt", "output `file` for the persisted tree")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: rtree-build [-o rtree_file] coords_file offsets_file")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	coords, err := readCoords(flag.Arg(0))
	if err != nil {
		logger.Fatal("failed to read coords file", zap.String("path", flag.Arg(0)), zap.Error(err))
	}
	refs, err := readRefs(flag.Arg(1))
	if err != nil {
		logger.Fatal("failed to read offsets file", zap.String("path", flag.Arg(1)), zap.Error(err))
	}

	entries, err := rtree.ComputeMBRs(coords, refs)
	if err != nil {
		logger.Fatal("failed to compute polygon MBRs", zap.Error(err))
	}
	tree, err := rtree.Build(entries, zorder.Generator{})
	if err != nil {
		logger.Fatal("failed to build tree", zap.Error(err))
	}
	logger.Info("built tree",
		zap.Int("leaves", tree.NumLeaves()),
		zap.Int("height", tree.Height()),
		zap.Ints("levelSizes", tree.LevelSizes()),
		zap.String("bounds", tree.Bounds().String()),
	)

	f, err := os.Create(*out)
	if err != nil {
		logger.Fatal("failed to create output file", zap.String("path", *out), zap.Error(err))
	}
	n, err := tree.Marshal(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		logger.Fatal("failed to write tree", zap.String("path", *out), zap.Error(err))
	}
	logger.Info("wrote tree", zap.String("path", *out), zap.Int("bytes", n))
}

func readCoords(path string) ([]rtree.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return geomidx.ReadCoords(f)
}

func readRefs(path string) ([]rtree.Ref, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return geomidx.ReadRefs(f)
}
