// Package opponent implements the scripted players the learning agent
// trains against.
package opponent
