package models

import "time"

type MessageType int

const (
	// Program lines are the console's own output: banner, session info.
	Program MessageType = iota
	// CommandLog is an executed command with the server's reply.
	CommandLog
)

type Message struct {
	Content string
	Type    MessageType
	Time    time.Time
	Command string // For CommandLog messages
}
