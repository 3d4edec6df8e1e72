package config

import "time"

// UI and display constants
const (
	CardsPerPage = 10

	ErrorColor   = 0xFF0000
	SuccessColor = 0x00FF00
	InfoColor    = 0x0099FF
	WarningColor = 0xFFAA00

	GoldColor   = 0xFFD700
	PurpleColor = 0x9B59B6
	OrangeColor = 0xE67E22
)

// Timeouts
const (
	DefaultQueryTimeout     = 30 * time.Second
	CommandExecutionTimeout = 10 * time.Second
	NetworkDialTimeout      = 5 * time.Second
	NetworkKeepAlive        = 30 * time.Second
)

// Pack reveal pacing
const (
	WalkoutStepDelay = 1500 * time.Millisecond
)
