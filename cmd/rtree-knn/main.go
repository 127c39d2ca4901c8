// Copyright 2026 The geomidx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command rtree-knn runs a batch of k-nearest-neighbor queries against
// a persisted R-tree, printing one result line per query to stdout.
// Proximity is ranked by bounding-rectangle distance.
//
// Usage:
//
//	rtree-knn rtree_file queries_file k
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/geomidx/geomidx"
	"github.com/geomidx/geomidx/rtree"
	"go.uber.org/zap"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: rtree-knn rtree_file queries_file k")
	}
	flag.Parse()
	if flag.NArg() != 3 {
		flag.Usage()
		os.Exit(2)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	k, err := strconv.Atoi(flag.Arg(2))
	if err != nil || k <= 0 {
		logger.Fatal("k must be a positive integer", zap.String("k", flag.Arg(2)))
	}

	tree, err := loadTree(flag.Arg(0))
	if err != nil {
		logger.Fatal("failed to load tree", zap.String("path", flag.Arg(0)), zap.Error(err))
	}

	f, err := os.Open(flag.Arg(1))
	if err != nil {
		logger.Fatal("failed to open queries file", zap.String("path", flag.Arg(1)), zap.Error(err))
	}
	queries, err := geomidx.ReadPointQueries(f)
	f.Close()
	if err != nil {
		logger.Fatal("failed to read queries file", zap.String("path", flag.Arg(1)), zap.Error(err))
	}

	if err := geomidx.RunNearestQueries(tree, queries, k, os.Stdout); err != nil {
		logger.Fatal("failed to run nearest queries", zap.Error(err))
	}
}

func loadTree(path string) (*rtree.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return rtree.Unmarshal(f)
}
