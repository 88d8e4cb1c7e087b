// Package mcp exposes the exercise log to language-model clients over
// the Model Context Protocol, either against a local database or a
// remote repsheet server.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("RepSheet", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Workout log server. Query logged exercises (per-set weights and reps for each side), look up the latest performance of each exercise, and append new log entries."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetExerciseLog, Handler: h.getExerciseLog},
		server.ServerTool{Tool: toolGetExerciseHistory, Handler: h.getExerciseHistory},
		server.ServerTool{Tool: toolGetRecentExercises, Handler: h.getRecentExercises},
		server.ServerTool{Tool: toolLogExercise, Handler: h.logExercise},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resRecentExercises, Handler: h.recentExercises},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resRecentExercises = mcp.NewResource(
	"repsheet://recent",
	"Recent Exercises",
	mcp.WithResourceDescription("Most recent logged row per exercise, grouped by body part"),
	mcp.WithMIMEType("application/json"),
)
