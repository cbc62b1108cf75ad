// Package http provides small JSON request and response helpers used by the
// garage endpoints.
//
//	req := gohttp.NewRequest(r)
//	res := gohttp.NewResponse(w)
//
//	var payload struct {
//	    Power string `json:"power"`
//	}
//	if err := req.Bind(&payload); err != nil {
//	    res.Error(http.StatusBadRequest, err.Error())
//	    return
//	}
//
//	v := validation.Make(map[string]string{"power": payload.Power}, validation.Rules{
//	    "power": "required|in:standard,sports,supersports",
//	})
//	if v.Fails() {
//	    res.ValidationError(v.Errors())
//	    return
//	}
//	res.Created(car)
package http
