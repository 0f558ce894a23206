// Package models defines the local replica tables of the day feature.
package models
