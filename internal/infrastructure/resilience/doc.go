/*
Package resilience provides a circuit breaker for calls that leave the process.

ucalc only talks to one unreliable dependency, the remote unit catalogue, so
the breaker is kept small: a closed breaker counts outcomes over a rolling
window, trips to open when its ShouldTrip rule says so, and after a cooldown
lets a limited number of probes through in the half-open state.

# Usage

	breaker := resilience.New("units-remote", resilience.Settings{
		Cooldown:   30 * time.Second,
		ShouldTrip: resilience.ConsecutiveFailures(3),
	})

	body, err := resilience.Call(ctx, breaker, func(ctx context.Context) ([]byte, error) {
		return fetch(ctx)
	})

# States

	Closed --[trip]-> Open --[cooldown]-> Half-Open --[probes succeed]-> Closed
	                                          |
	                                      [failure]
	                                          v
	                                         Open
*/
package resilience
