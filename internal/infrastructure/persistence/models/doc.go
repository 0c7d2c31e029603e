// Package models contains the GORM persistence models of the service.
// Domain types carry no ORM tags; each model maps to one table and converts
// to and from its domain type.
package models
