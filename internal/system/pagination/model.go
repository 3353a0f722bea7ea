/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package pagination

import (
	"net/url"
	"strconv"
)

type Link struct {
	Href string `json:"href"`
	Rel  string `json:"rel"`
}

// Links builds first, previous, next and last links for an offset page by
// rewriting the offset and limit parameters of the request URL.
func Links(requestURL *url.URL, offset, limit, total int) []Link {

	if limit <= 0 {
		return nil
	}

	href := func(o int) string {
		u := *requestURL
		q := u.Query()
		q.Set("offset", strconv.Itoa(o))
		q.Set("limit", strconv.Itoa(limit))
		u.RawQuery = q.Encode()
		return u.RequestURI()
	}

	last := 0
	if total > 0 {
		last = ((total - 1) / limit) * limit
	}

	links := []Link{{Href: href(0), Rel: "first"}}
	if offset > 0 {
		previous := offset - limit
		if previous < 0 {
			previous = 0
		}
		links = append(links, Link{Href: href(previous), Rel: "previous"})
	}
	if offset+limit < total {
		links = append(links, Link{Href: href(offset + limit), Rel: "next"})
	}
	links = append(links, Link{Href: href(last), Rel: "last"})
	return links
}
