// Package datarecording stores simulation records in SQLite databases and
// reads them back.
package datarecording
