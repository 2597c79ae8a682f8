// Package table provides the Table aggregate: a dining table with its occupancy status
// and the waiter bound to it while guests are served.
package table
