/*
Copyright © 2025 the Stakeout authors.
This file is part of Stakeout.

Stakeout is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Stakeout is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Stakeout.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command stakeout is a command-line interface for the Stakeout
// station-offset alignment engine.
package main

import "github.com/spatialroad/stakeout/stakeoututil"

func main() {
	stakeoututil.Execute()
}
