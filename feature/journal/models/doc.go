// Package models holds the GORM models of the run journal.
package models
