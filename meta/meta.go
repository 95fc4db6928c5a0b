// meta/meta.go
package meta

// PILE_SIZE is the number of sticks a game starts with.
const PILE_SIZE = 24

// ACTIONS are the stick counts a player may remove on a turn, in offer order.
var ACTIONS = []int{1, 2, 3}

// ALPHA is the learning rate of the value update.
const ALPHA = 0.1

// EPSILON is the starting exploration rate.
const EPSILON = 1.0

// EPSILON_DECAY multiplies the exploration rate after every training epoch.
const EPSILON_DECAY = 0.9995

// MIN_EPSILON bounds the decayed exploration rate from below.
const MIN_EPSILON = 0.01

// EPOCHS defines the number of self-play games for training.
const EPOCHS = 10000

// EVAL_EPISODES defines the number of games against a random player during evaluation.
const EVAL_EPISODES = 1000

// LOG_EVERY defines how often training progress is logged.
const LOG_EVERY = 1000

// STORE_PATH is where the value table is kept between runs.
const STORE_PATH = "values.gob"
