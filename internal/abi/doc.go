// Package abi provides alignment arithmetic shared by the planner and the
// reference stores.
//
// This package is internal to ecs-layout.
package abi
