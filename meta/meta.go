// meta/meta.go
package meta

// ATTACK_WITH_RED_UNTIL is the move count before which the automated side attacks with red pieces only.
const ATTACK_WITH_RED_UNTIL = 20

// TIGHTEN_AFTER_RED_CAPTURES is the number of opponent reds captured after which
// the automated side only captures pieces known to be blue.
const TIGHTEN_AFTER_RED_CAPTURES = 3

// MAX_TURNS caps the number of moves of a self-play game.
const MAX_TURNS = 300

// NUM_GAMES defines the default number of self-play games per experiment.
const NUM_GAMES = 30
