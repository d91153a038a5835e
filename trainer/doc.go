// Package trainer runs the training loop of the learning agent against a
// mixture of scripted opponents, checkpointing its progress so that an
// interrupted run can be resumed.
package trainer
