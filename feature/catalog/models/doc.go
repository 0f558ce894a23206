// Package models defines the local replica table of the catalog feature.
package models
