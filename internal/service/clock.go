package service

import "time"

// nowFunc supplies the current instant; tests swap it for a fixed clock.
var nowFunc = time.Now
