// Package qlearn implements tabular temporal-difference learning of board
// position values for two-player board games.
//
// State values are kept in a ValueStore, an in-memory cache backed by a
// durable Table (see the ldbstore, rdbstore and sqlstore packages).
// An Agent selects moves epsilon-greedily by one-step lookahead through the
// game Rules and learns from batches sampled out of a bounded ReplayBuffer.
package qlearn
